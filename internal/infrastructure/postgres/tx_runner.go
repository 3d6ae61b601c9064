package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/credsim/bandeiras-api/internal/application/enrollment"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

var _ enrollment.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback. Usado na criação do agregado (Client + ClientFlags +
// SalesReport) e na mudança de status com recomputação do status geral.
func (r *TxRunner) Run(ctx context.Context, fn func(
	clients repository.ClientRepository,
	clientFlags repository.ClientFlagRepository,
	sales repository.SalesReportRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	clients := NewClientRepository(tx)
	clientFlags := NewClientFlagRepository(tx)
	sales := NewSalesReportRepository(tx)

	if err := fn(clients, clientFlags, sales); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
