package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// PlanRepository define a porta de persistência do catálogo de planos.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	GetByCode(ctx context.Context, code string) (*entity.Plan, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
}
