package enrollment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// Update edita os campos cadastrais/contato/bancários/parceiro/notes do
// cliente (vendedor dono ou admin). Protocol, total_value, status e
// documentos nunca mudam por aqui.
func (uc *UseCase) Update(ctx context.Context, actor Actor, id uuid.UUID, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	client, err := uc.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.authorizeOwner(actor, client); err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&client.Name, in.Name)
	apply(&client.RazaoSocial, in.RazaoSocial)
	apply(&client.RamoAtividade, in.RamoAtividade)
	apply(&client.TipoCartao, in.TipoCartao)
	apply(&client.InscricaoEstadual, in.InscricaoEstadual)
	apply(&client.Email, in.Email)
	apply(&client.Telefone, in.Telefone)
	apply(&client.Rua, in.Rua)
	apply(&client.Numero, in.Numero)
	apply(&client.Complemento, in.Complemento)
	apply(&client.Bairro, in.Bairro)
	apply(&client.Cidade, in.Cidade)
	apply(&client.Estado, in.Estado)
	apply(&client.CEP, in.CEP)
	apply(&client.Banco, in.Banco)
	apply(&client.Agencia, in.Agencia)
	apply(&client.Conta, in.Conta)
	apply(&client.Digito, in.Digito)
	apply(&client.Notes, in.Notes)

	if in.ClearPartner {
		client.PartnerID = nil
	} else if in.PartnerUUID != nil {
		partner, err := uc.users.GetByID(ctx, *in.PartnerUUID)
		if err != nil {
			return nil, err
		}
		if partner == nil || partner.Role != entity.RolePartner {
			return nil, domain.ErrInvalidInput
		}
		client.PartnerID = in.PartnerUUID
	}
	client.UpdatedAt = time.Now()

	if err := uc.clients.Update(ctx, client); err != nil {
		return nil, err
	}

	flags, err := uc.clientFlags.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	resp := uc.fullProjection(client, flags)
	return &resp, nil
}

// Delete remove o cliente (admin). Vínculos e venda caem por cascata no
// banco; os documentos saem do storage em best-effort.
func (uc *UseCase) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}

	client, err := uc.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}

	if err := uc.clients.Delete(ctx, id); err != nil {
		return err
	}

	uc.deleteUploads(ctx, [3]string{client.DocumentURL, client.InvoiceURL, client.EnergyBillURL})
	uc.invalidateStatus(ctx, client)

	uc.log.Info().Str("client_id", id.String()).Str("protocol", client.Protocol).Msg("cliente removido")
	return nil
}
