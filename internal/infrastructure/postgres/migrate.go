package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5" // driver pgx5
	_ "github.com/golang-migrate/migrate/v4/source/file"     // migrações em disco
)

// RunMigrations aplica as migrações pendentes de dir sobre o banco do DSN.
// Idempotente: banco já atualizado não é erro.
func RunMigrations(dsn, dir string) error {
	// O driver do golang-migrate para pgx/v5 espera o scheme pgx5://.
	url := dsn
	if strings.HasPrefix(url, "postgres://") {
		url = "pgx5://" + strings.TrimPrefix(url, "postgres://")
	} else if strings.HasPrefix(url, "postgresql://") {
		url = "pgx5://" + strings.TrimPrefix(url, "postgresql://")
	}

	m, err := migrate.New("file://"+dir, url)
	if err != nil {
		return fmt.Errorf("abrindo migrações: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("aplicando migrações: %w", err)
	}
	return nil
}
