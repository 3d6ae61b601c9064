package enrollment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// UpdateFlagStatus muda o status de uma bandeira do cliente e recomputa o
// status geral na mesma transação (ordem pending > in_analysis > approved).
// Vendedor dono ou admin.
func (uc *UseCase) UpdateFlagStatus(ctx context.Context, actor Actor, clientID, flagID uuid.UUID, status entity.Status) (*dto.ClientResponse, error) {
	client, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeOwner(actor, client); err != nil {
		return nil, err
	}

	var updatedFlags []*entity.ClientFlag
	err = uc.tx.Run(ctx, func(
		clients repository.ClientRepository,
		clientFlags repository.ClientFlagRepository,
		_ repository.SalesReportRepository,
	) error {
		cf, err := clientFlags.GetByClientAndFlag(ctx, clientID, flagID)
		if err != nil {
			return err
		}
		if cf == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		if err := clientFlags.UpdateStatus(ctx, cf.ID, status, actor.ID, now); err != nil {
			return err
		}

		all, err := clientFlags.ListByClient(ctx, clientID)
		if err != nil {
			return err
		}
		statuses := make([]entity.Status, 0, len(all))
		for _, f := range all {
			statuses = append(statuses, f.Status)
		}

		overall := entity.DeriveOverallStatus(client.Status, statuses)
		if overall != client.Status {
			if err := clients.UpdateStatus(ctx, clientID, overall); err != nil {
				return err
			}
			client.Status = overall
		}
		updatedFlags = all
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateStatus(ctx, client)

	uc.log.Info().
		Str("client_id", clientID.String()).
		Str("flag_id", flagID.String()).
		Str("status", string(status)).
		Str("overall", string(client.Status)).
		Msg("status de bandeira atualizado")

	resp := uc.fullProjection(client, updatedFlags)
	return &resp, nil
}

// invalidateStatus tira a projeção pública do cache; falha é só logada.
func (uc *UseCase) invalidateStatus(ctx context.Context, client *entity.Client) {
	if err := uc.cache.Invalidate(ctx, client.Protocol, client.CNPJ); err != nil {
		uc.log.Warn().Err(err).Str("protocol", client.Protocol).Msg("falha ao invalidar cache de status")
	}
}
