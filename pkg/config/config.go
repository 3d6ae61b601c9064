package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa a configuração da aplicação (lida via Viper de env e opcionalmente arquivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	S3        S3Config
	RateLimit RateLimitConfig
	Upload    UploadConfig
}

// AppConfig configuração geral da aplicação.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuração do PostgreSQL.
// Se DatabaseURL não estiver vazio, é usado como connection string completo.
type DBConfig struct {
	DatabaseURL   string
	Host          string
	Port          int
	User          string
	Password      string
	DBName        string
	SSLMode       string
	MigrationsDir string // diretório com os .sql do golang-migrate
}

// ConnectionString devolve o DSN a usar: DatabaseURL se definido, senão o construído.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devolve o connection string do PostgreSQL com URL encoding para caracteres especiais.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuração de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuração do servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devolve o endereço de escuta (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configuração do Redis (rate limiting e cache da consulta pública).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// S3Config configuração do bucket de documentos dos clientes.
// Endpoint vazio usa o endpoint padrão da AWS; preenchido habilita
// armazenamento S3-compatível (ex.: MinIO) com path-style.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// RateLimitConfig janelas de rate limiting por IP.
type RateLimitConfig struct {
	GeneralMax       int // requisições na janela geral
	GeneralWindowMin int // janela geral em minutos
	StrictMax        int // cadastro de clientes e consulta pública
	StrictWindowMin  int
}

// UploadConfig limites dos documentos anexados no cadastro.
type UploadConfig struct {
	MaxFileSizeMB int
}

// MaxFileSizeBytes devolve o limite por arquivo em bytes.
func (c UploadConfig) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// Load lê a configuração de variáveis de ambiente, com um arquivo .env opcional
// na raiz. Variáveis de ambiente têm prioridade sobre o arquivo.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // arquivo é opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "bandeiras-api"),
		},
		DB: DBConfig{
			DatabaseURL:   getString(v, "DATABASE_URL", ""),
			Host:          getString(v, "DB_HOST", "localhost"),
			Port:          getInt(v, "DB_PORT", 5432),
			User:          getString(v, "DB_USER", "postgres"),
			Password:      getString(v, "DB_PASSWORD", ""),
			DBName:        getString(v, "DB_NAME", "bandeiras"),
			SSLMode:       getString(v, "DB_SSLMODE", "disable"),
			MigrationsDir: getString(v, "DB_MIGRATIONS_DIR", "migrations"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24*7),
			Issuer:     getString(v, "JWT_ISSUER", "card-flags-system"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		S3: S3Config{
			Bucket:          getString(v, "S3_BUCKET", "card-flags-docs"),
			Region:          getString(v, "S3_REGION", "sa-east-1"),
			Endpoint:        getString(v, "S3_ENDPOINT", ""),
			AccessKeyID:     getString(v, "S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getString(v, "S3_SECRET_ACCESS_KEY", ""),
		},
		RateLimit: RateLimitConfig{
			GeneralMax:       getInt(v, "RATE_LIMIT_MAX_REQUESTS", 100),
			GeneralWindowMin: getInt(v, "RATE_LIMIT_WINDOW_MINUTES", 15),
			StrictMax:        getInt(v, "RATE_LIMIT_STRICT_MAX", 5),
			StrictWindowMin:  getInt(v, "RATE_LIMIT_STRICT_WINDOW_MINUTES", 60),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: getInt(v, "UPLOAD_MAX_FILE_SIZE_MB", 5),
		},
	}

	if cfg.App.Env != "development" && cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET é obrigatório fora de development")
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret-trocar-em-producao"
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		if s, ok := v.Get(key).(string); ok {
			n, err := strconv.Atoi(s)
			if err != nil {
				return def
			}
			return n
		}
		return v.GetInt(key)
	}
	return def
}
