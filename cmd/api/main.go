package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/credsim/bandeiras-api/internal/application/auth"
	"github.com/credsim/bandeiras-api/internal/application/catalog"
	"github.com/credsim/bandeiras-api/internal/application/enrollment"
	"github.com/credsim/bandeiras-api/internal/application/reporting"
	"github.com/credsim/bandeiras-api/internal/infrastructure/cache"
	infrapdf "github.com/credsim/bandeiras-api/internal/infrastructure/pdf"
	"github.com/credsim/bandeiras-api/internal/infrastructure/postgres"
	"github.com/credsim/bandeiras-api/internal/infrastructure/storage"
	httpRouter "github.com/credsim/bandeiras-api/internal/interfaces/http"
	"github.com/credsim/bandeiras-api/pkg/config"
	"github.com/credsim/bandeiras-api/pkg/jwt"
	"github.com/credsim/bandeiras-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(cfg.App.Env)
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.DB.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("migrações")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao Redis")
	}
	defer rdb.Close()

	store, err := storage.NewS3DocumentStore(ctx, cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("cliente S3")
	}

	userRepo := postgres.NewUserRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	flagRepo := postgres.NewFlagRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	clientFlagRepo := postgres.NewClientFlagRepository(pool)
	salesRepo := postgres.NewSalesReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiration, cfg.JWT.Issuer)
	statusCache := cache.NewStatusCache(rdb)
	limiter := cache.NewLimiter(rdb)

	authUC := auth.NewUseCase(userRepo, tokens)
	planUC := catalog.NewPlanUseCase(planRepo)
	flagUC := catalog.NewFlagUseCase(flagRepo)
	enrollmentUC := enrollment.NewUseCase(
		clientRepo, clientFlagRepo, planRepo, flagRepo, userRepo,
		txRunner, store, statusCache, log,
	)
	reportUC := reporting.NewUseCase(salesRepo, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		// Três documentos de até MaxFileSize cada, mais os campos do form.
		BodyLimit: int(cfg.Upload.MaxFileSizeBytes())*3 + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bandeiras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		PlanUC:       planUC,
		FlagUC:       flagUC,
		EnrollmentUC: enrollmentUC,
		ReportUC:     reportUC,
		Tokens:       tokens,
		Limiter:      limiter,
		RateLimit:    cfg.RateLimit,
		Upload:       cfg.Upload,
		Responder:    httpRouter.NewResponder(log, cfg.App.Env == "development"),
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
