package enrollment

import (
	"context"
	"encoding/json"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/cnpj"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/protocol"
)

// CheckStatus consulta pública por protocolo OU cnpj (exatamente um).
// Resposta cacheada por 60s; redis fora do ar degrada para o banco.
func (uc *UseCase) CheckStatus(ctx context.Context, protocolQuery, cnpjQuery string) (*dto.PublicStatusResponse, error) {
	var lookup string
	switch {
	case protocolQuery != "" && cnpjQuery != "":
		return nil, domain.ErrInvalidInput
	case protocolQuery != "":
		if !protocol.Valid(protocolQuery) {
			return nil, domain.ErrInvalidInput
		}
		lookup = protocolQuery
	case cnpjQuery != "":
		cnpjQuery = cnpj.Normalize(cnpjQuery)
		if !cnpj.Valid(cnpjQuery) {
			return nil, domain.ErrInvalidInput
		}
		lookup = cnpjQuery
	default:
		return nil, domain.ErrInvalidInput
	}

	if payload, ok, err := uc.cache.Get(ctx, lookup); err != nil {
		uc.log.Warn().Err(err).Msg("cache de status indisponível")
	} else if ok {
		var cached dto.PublicStatusResponse
		if err := json.Unmarshal(payload, &cached); err == nil {
			return &cached, nil
		}
	}

	var client *entity.Client
	var err error
	if protocolQuery != "" {
		client, err = uc.clients.GetByProtocol(ctx, protocolQuery)
	} else {
		client, err = uc.clients.GetByCNPJ(ctx, cnpjQuery)
	}
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	planName := ""
	if plan, err := uc.plans.GetByID(ctx, client.PlanID); err != nil {
		return nil, err
	} else if plan != nil {
		planName = plan.Name
	}

	flags, err := uc.clientFlags.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	resp := uc.publicProjection(client, planName, flags)

	if payload, err := json.Marshal(resp); err == nil {
		if err := uc.cache.Set(ctx, lookup, payload); err != nil {
			uc.log.Warn().Err(err).Msg("falha ao cachear status público")
		}
	}

	return &resp, nil
}
