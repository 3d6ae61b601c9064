// Package catalog concentra os casos de uso do catálogo de planos e
// bandeiras. Edições nunca retroagem sobre matrículas existentes: os valores
// ficam snapshotados em client_flags e sales_reports.
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// PlanUseCase CRUD de planos.
type PlanUseCase struct {
	plans repository.PlanRepository
}

// NewPlanUseCase constrói o caso de uso de planos.
func NewPlanUseCase(plans repository.PlanRepository) *PlanUseCase {
	return &PlanUseCase{plans: plans}
}

// Create cria um plano (admin).
func (uc *PlanUseCase) Create(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	now := time.Now()
	plan := &entity.Plan{
		ID:          uuid.New(),
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		FlagCount:   in.FlagCount,
		Price:       in.Price,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.plans.Create(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.NewPlanResponse(plan)
	return &resp, nil
}

// Get busca um plano por ID.
func (uc *PlanUseCase) Get(ctx context.Context, id uuid.UUID) (*dto.PlanResponse, error) {
	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewPlanResponse(plan)
	return &resp, nil
}

// List devolve os planos; onlyActive restringe aos ativos.
func (uc *PlanUseCase) List(ctx context.Context, onlyActive bool) ([]dto.PlanResponse, error) {
	plans, err := uc.plans.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, dto.NewPlanResponse(p))
	}
	return out, nil
}

// Update edita um plano (admin). O code não muda após a criação.
func (uc *PlanUseCase) Update(ctx context.Context, id uuid.UUID, in dto.UpdatePlanRequest) (*dto.PlanResponse, error) {
	plan, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		plan.Name = *in.Name
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if in.FlagCount != nil {
		plan.FlagCount = *in.FlagCount
	}
	if in.Price != nil {
		plan.Price = *in.Price
	}
	if in.IsActive != nil {
		plan.IsActive = *in.IsActive
	}
	plan.UpdatedAt = time.Now()

	if err := uc.plans.Update(ctx, plan); err != nil {
		return nil, err
	}
	resp := dto.NewPlanResponse(plan)
	return &resp, nil
}

// Delete remove um plano (admin).
func (uc *PlanUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.plans.Delete(ctx, id)
}
