package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

var _ repository.FlagRepository = (*FlagRepo)(nil)

const flagColumns = `id, name, code, description, price, is_active, created_at, updated_at`

// FlagRepo implementação do FlagRepository sobre PostgreSQL (pool ou tx).
type FlagRepo struct {
	q Querier
}

// NewFlagRepository constrói o adaptador de persistência de bandeiras.
func NewFlagRepository(q Querier) *FlagRepo {
	return &FlagRepo{q: q}
}

// Create persiste uma nova bandeira.
func (r *FlagRepo) Create(ctx context.Context, flag *entity.Flag) error {
	query := `
		INSERT INTO flags (` + flagColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		flag.ID, flag.Name, flag.Code, flag.Description, flag.Price, flag.IsActive,
		flag.CreatedAt, flag.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert flag: %w", err)
	}
	return nil
}

// GetByID busca uma bandeira por ID.
func (r *FlagRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Flag, error) {
	query := `SELECT ` + flagColumns + ` FROM flags WHERE id = $1`
	var f entity.Flag
	err := r.q.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.Name, &f.Code, &f.Description, &f.Price, &f.IsActive,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get flag by id: %w", err)
	}
	return &f, nil
}

// GetByIDs busca as bandeiras dos ids informados; ausentes não aparecem.
func (r *FlagRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Flag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + flagColumns + ` FROM flags WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get flags by ids: %w", err)
	}
	defer rows.Close()
	return scanFlags(rows)
}

// List devolve as bandeiras; onlyActive restringe às ativas.
func (r *FlagRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Flag, error) {
	query := `SELECT ` + flagColumns + ` FROM flags`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list flags: %w", err)
	}
	defer rows.Close()
	return scanFlags(rows)
}

// Update atualiza uma bandeira.
func (r *FlagRepo) Update(ctx context.Context, flag *entity.Flag) error {
	query := `
		UPDATE flags
		SET name = $2, code = $3, description = $4, price = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		flag.ID, flag.Name, flag.Code, flag.Description, flag.Price, flag.IsActive, flag.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove uma bandeira por ID.
func (r *FlagRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM flags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFlags(rows pgx.Rows) ([]*entity.Flag, error) {
	var list []*entity.Flag
	for rows.Next() {
		var f entity.Flag
		if err := rows.Scan(
			&f.ID, &f.Name, &f.Code, &f.Description, &f.Price, &f.IsActive,
			&f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan flag: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}
