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

// FlagUseCase CRUD de bandeiras.
type FlagUseCase struct {
	flags repository.FlagRepository
}

// NewFlagUseCase constrói o caso de uso de bandeiras.
func NewFlagUseCase(flags repository.FlagRepository) *FlagUseCase {
	return &FlagUseCase{flags: flags}
}

// Create cria uma bandeira (admin).
func (uc *FlagUseCase) Create(ctx context.Context, in dto.CreateFlagRequest) (*dto.FlagResponse, error) {
	now := time.Now()
	flag := &entity.Flag{
		ID:          uuid.New(),
		Name:        in.Name,
		Code:        in.Code,
		Description: in.Description,
		Price:       in.Price,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.flags.Create(ctx, flag); err != nil {
		return nil, err
	}
	resp := dto.NewFlagResponse(flag)
	return &resp, nil
}

// Get busca uma bandeira por ID.
func (uc *FlagUseCase) Get(ctx context.Context, id uuid.UUID) (*dto.FlagResponse, error) {
	flag, err := uc.flags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flag == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewFlagResponse(flag)
	return &resp, nil
}

// List devolve as bandeiras; onlyActive restringe às ativas.
func (uc *FlagUseCase) List(ctx context.Context, onlyActive bool) ([]dto.FlagResponse, error) {
	flags, err := uc.flags.List(ctx, onlyActive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FlagResponse, 0, len(flags))
	for _, f := range flags {
		out = append(out, dto.NewFlagResponse(f))
	}
	return out, nil
}

// Update edita uma bandeira (admin). O code não muda após a criação.
func (uc *FlagUseCase) Update(ctx context.Context, id uuid.UUID, in dto.UpdateFlagRequest) (*dto.FlagResponse, error) {
	flag, err := uc.flags.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if flag == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		flag.Name = *in.Name
	}
	if in.Description != nil {
		flag.Description = *in.Description
	}
	if in.Price != nil {
		flag.Price = *in.Price
	}
	if in.IsActive != nil {
		flag.IsActive = *in.IsActive
	}
	flag.UpdatedAt = time.Now()

	if err := uc.flags.Update(ctx, flag); err != nil {
		return nil, err
	}
	resp := dto.NewFlagResponse(flag)
	return &resp, nil
}

// Delete remove uma bandeira (admin).
func (uc *FlagUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.flags.Delete(ctx, id)
}
