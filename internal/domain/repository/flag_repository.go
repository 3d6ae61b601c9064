package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// FlagRepository define a porta de persistência do catálogo de bandeiras.
type FlagRepository interface {
	Create(ctx context.Context, flag *entity.Flag) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Flag, error)
	// GetByIDs devolve as bandeiras encontradas entre os ids pedidos;
	// ids ausentes simplesmente não aparecem no resultado.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Flag, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Flag, error)
	Update(ctx context.Context, flag *entity.Flag) error
	Delete(ctx context.Context, id uuid.UUID) error
}
