package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// ClientFlagRepository define a porta de persistência dos vínculos
// cliente-bandeira.
type ClientFlagRepository interface {
	CreateBatch(ctx context.Context, flags []*entity.ClientFlag) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.ClientFlag, error)
	GetByClientAndFlag(ctx context.Context, clientID, flagID uuid.UUID) (*entity.ClientFlag, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.Status, updatedBy uuid.UUID, updatedAt time.Time) error
}
