package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

var _ repository.ClientFlagRepository = (*ClientFlagRepo)(nil)

const clientFlagColumns = `id, client_id, flag_id, flag_name, flag_price, status,
	status_updated_at, status_updated_by, created_at, updated_at`

// ClientFlagRepo implementação do ClientFlagRepository sobre PostgreSQL (pool ou tx).
type ClientFlagRepo struct {
	q Querier
}

// NewClientFlagRepository constrói o adaptador dos vínculos cliente-bandeira.
func NewClientFlagRepository(q Querier) *ClientFlagRepo {
	return &ClientFlagRepo{q: q}
}

// CreateBatch insere os vínculos da matrícula de uma vez.
func (r *ClientFlagRepo) CreateBatch(ctx context.Context, flags []*entity.ClientFlag) error {
	query := `
		INSERT INTO client_flags (` + clientFlagColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, cf := range flags {
		_, err := r.q.Exec(ctx, query,
			cf.ID, cf.ClientID, cf.FlagID, cf.FlagName, cf.FlagPrice, cf.Status,
			cf.StatusUpdatedAt, cf.StatusUpdatedBy, cf.CreatedAt, cf.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrInvalidFlagSelection
			}
			return fmt.Errorf("insert client_flag: %w", err)
		}
	}
	return nil
}

// ListByClient devolve os vínculos do cliente na ordem de criação.
func (r *ClientFlagRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.ClientFlag, error) {
	query := `SELECT ` + clientFlagColumns + ` FROM client_flags WHERE client_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list client_flags: %w", err)
	}
	defer rows.Close()

	var list []*entity.ClientFlag
	for rows.Next() {
		var cf entity.ClientFlag
		if err := rows.Scan(
			&cf.ID, &cf.ClientID, &cf.FlagID, &cf.FlagName, &cf.FlagPrice, &cf.Status,
			&cf.StatusUpdatedAt, &cf.StatusUpdatedBy, &cf.CreatedAt, &cf.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan client_flag: %w", err)
		}
		list = append(list, &cf)
	}
	return list, rows.Err()
}

// GetByClientAndFlag busca o vínculo de um cliente com uma bandeira.
func (r *ClientFlagRepo) GetByClientAndFlag(ctx context.Context, clientID, flagID uuid.UUID) (*entity.ClientFlag, error) {
	query := `SELECT ` + clientFlagColumns + ` FROM client_flags WHERE client_id = $1 AND flag_id = $2`
	var cf entity.ClientFlag
	err := r.q.QueryRow(ctx, query, clientID, flagID).Scan(
		&cf.ID, &cf.ClientID, &cf.FlagID, &cf.FlagName, &cf.FlagPrice, &cf.Status,
		&cf.StatusUpdatedAt, &cf.StatusUpdatedBy, &cf.CreatedAt, &cf.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client_flag: %w", err)
	}
	return &cf, nil
}

// UpdateStatus grava o novo status do vínculo com a auditoria de quem mudou.
func (r *ClientFlagRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.Status, updatedBy uuid.UUID, updatedAt time.Time) error {
	query := `
		UPDATE client_flags
		SET status = $2, status_updated_at = $3, status_updated_by = $4, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("update client_flag status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
