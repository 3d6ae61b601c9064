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

var _ repository.PlanRepository = (*PlanRepo)(nil)

const planColumns = `id, name, code, description, flag_count, price, is_active, created_at, updated_at`

// PlanRepo implementação do PlanRepository sobre PostgreSQL (pool ou tx).
type PlanRepo struct {
	q Querier
}

// NewPlanRepository constrói o adaptador de persistência de planos.
func NewPlanRepository(q Querier) *PlanRepo {
	return &PlanRepo{q: q}
}

// Create persiste um novo plano.
func (r *PlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		plan.ID, plan.Name, plan.Code, plan.Description, plan.FlagCount, plan.Price,
		plan.IsActive, plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID busca um plano por ID.
func (r *PlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get plan by id")
}

// GetByCode busca um plano pelo código único.
func (r *PlanRepo) GetByCode(ctx context.Context, code string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE code = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, code), "get plan by code")
}

// List devolve os planos; onlyActive restringe aos ativos.
func (r *PlanRepo) List(ctx context.Context, onlyActive bool) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if onlyActive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY price`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Description, &p.FlagCount, &p.Price,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update atualiza um plano.
func (r *PlanRepo) Update(ctx context.Context, plan *entity.Plan) error {
	query := `
		UPDATE plans
		SET name = $2, code = $3, description = $4, flag_count = $5, price = $6, is_active = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		plan.ID, plan.Name, plan.Code, plan.Description, plan.FlagCount, plan.Price,
		plan.IsActive, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um plano por ID.
func (r *PlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PlanRepo) scanOne(row pgx.Row, op string) (*entity.Plan, error) {
	var p entity.Plan
	err := row.Scan(
		&p.ID, &p.Name, &p.Code, &p.Description, &p.FlagCount, &p.Price,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}
