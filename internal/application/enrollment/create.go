package enrollment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/protocol"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// Create cadastra um cliente: valida identidade, plano e bandeiras, sobe os
// três documentos e grava Client + ClientFlags + SalesReport numa única
// transação, com alocação de protocolo dentro dela. Colisão de protocolo
// reinicia a transação (até 10 tentativas); falha depois do upload dispara
// remoção best-effort dos objetos.
func (uc *UseCase) Create(ctx context.Context, actor Actor, in dto.CreateClientRequest, files Files) (*dto.ClientResponse, error) {
	if files.Document == nil || files.Invoice == nil || files.EnergyBill == nil {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := uc.clients.GetByCNPJ(ctx, in.CNPJ); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateIdentity
	}
	if existing, err := uc.clients.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateIdentity
	}

	plan, err := uc.plans.GetByID(ctx, in.PlanUUID)
	if err != nil {
		return nil, err
	}
	if plan == nil || !plan.IsActive {
		return nil, domain.ErrInvalidPlan
	}

	selected, err := uc.resolveFlags(ctx, in.FlagIDs)
	if err != nil {
		return nil, err
	}
	if required, exact := plan.RequiredFlagCount(); exact && len(selected) != required {
		return nil, domain.ErrFlagCountMismatch
	}

	totalValue := plan.Price
	if plan.IsIndividual() {
		totalValue = decimal.Zero
		for _, f := range selected {
			totalValue = totalValue.Add(f.Price)
		}
	}

	seller, err := uc.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, domain.ErrUserNotFound
	}

	partnerName := ""
	if in.PartnerUUID != nil {
		partner, err := uc.users.GetByID(ctx, *in.PartnerUUID)
		if err != nil {
			return nil, err
		}
		if partner == nil || partner.Role != entity.RolePartner {
			return nil, domain.ErrInvalidInput
		}
		partnerName = partner.Name
	}

	urls, err := uc.uploadAll(ctx, files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	client := &entity.Client{
		ID:                uuid.New(),
		Name:              in.Name,
		RazaoSocial:       in.RazaoSocial,
		RamoAtividade:     in.RamoAtividade,
		TipoCartao:        in.TipoCartao,
		CNPJ:              in.CNPJ,
		InscricaoEstadual: in.InscricaoEstadual,
		Email:             in.Email,
		Telefone:          in.Telefone,
		Rua:               in.Rua,
		Numero:            in.Numero,
		Complemento:       in.Complemento,
		Bairro:            in.Bairro,
		Cidade:            in.Cidade,
		Estado:            in.Estado,
		CEP:               in.CEP,
		Banco:             in.Banco,
		Agencia:           in.Agencia,
		Conta:             in.Conta,
		Digito:            in.Digito,
		PlanID:            plan.ID,
		TotalValue:        totalValue,
		Status:            entity.StatusPending,
		PartnerID:         in.PartnerUUID,
		CreatedBy:         actor.ID,
		Notes:             in.Notes,
		DocumentURL:       urls[0],
		InvoiceURL:        urls[1],
		EnergyBillURL:     urls[2],
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	clientFlags := make([]*entity.ClientFlag, 0, len(selected))
	for _, f := range selected {
		clientFlags = append(clientFlags, &entity.ClientFlag{
			ID:        uuid.New(),
			ClientID:  client.ID,
			FlagID:    f.ID,
			FlagName:  f.Name,
			FlagPrice: f.Price,
			Status:    entity.StatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	if err := uc.persistAggregate(ctx, client, clientFlags, plan.Name, seller.Name, partnerName, now); err != nil {
		uc.deleteUploads(ctx, urls)
		return nil, err
	}

	uc.log.Info().
		Str("protocol", client.Protocol).
		Str("client_id", client.ID.String()).
		Str("plan", plan.Code).
		Msg("cliente cadastrado")

	resp := uc.fullProjection(client, clientFlags)
	return &resp, nil
}

// resolveFlags valida a seleção: sem repetição, todas existentes e ativas.
func (uc *UseCase) resolveFlags(ctx context.Context, ids []uuid.UUID) ([]*entity.Flag, error) {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, domain.ErrInvalidFlagSelection
		}
		seen[id] = true
	}

	found, err := uc.flags.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, domain.ErrInvalidFlagSelection
	}
	for _, f := range found {
		if !f.IsActive {
			return nil, domain.ErrInvalidFlagSelection
		}
	}
	return found, nil
}

// persistAggregate tenta gravar o agregado com um protocolo novo a cada
// tentativa. Colisão de protocolo (check ou constraint) aborta a transação
// corrente e consome uma tentativa.
func (uc *UseCase) persistAggregate(ctx context.Context, client *entity.Client, clientFlags []*entity.ClientFlag, planName, sellerName, partnerName string, now time.Time) error {
	for attempt := 0; attempt < protocolAttempts; attempt++ {
		proto, err := protocol.Generate(now)
		if err != nil {
			return err
		}
		client.Protocol = proto

		err = uc.tx.Run(ctx, func(
			clients repository.ClientRepository,
			flags repository.ClientFlagRepository,
			sales repository.SalesReportRepository,
		) error {
			taken, err := clients.ProtocolExists(ctx, proto)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrProtocolTaken
			}
			if err := clients.Create(ctx, client); err != nil {
				return err
			}
			if err := flags.CreateBatch(ctx, clientFlags); err != nil {
				return err
			}
			report := entity.NewSalesReport(client, client.Name, planName, sellerName, partnerName, now)
			return sales.Create(ctx, report)
		})
		if errors.Is(err, domain.ErrProtocolTaken) {
			uc.log.Warn().Str("protocol", proto).Int("attempt", attempt+1).Msg("colisão de protocolo")
			continue
		}
		return err
	}
	return domain.ErrProtocolExhausted
}

func (uc *UseCase) uploadAll(ctx context.Context, files Files) ([3]string, error) {
	var urls [3]string
	inputs := []struct {
		category string
		file     *FileInput
	}{
		{CategoryDocument, files.Document},
		{CategoryInvoice, files.Invoice},
		{CategoryEnergyBill, files.EnergyBill},
	}
	for i, in := range inputs {
		url, err := uc.store.Upload(ctx, in.category, in.file.Filename, in.file.ContentType, in.file.Content, in.file.Size)
		if err != nil {
			uc.deleteUploads(ctx, urls)
			return urls, err
		}
		urls[i] = url
	}
	return urls, nil
}

// deleteUploads compensação best-effort: falha só gera log.
func (uc *UseCase) deleteUploads(ctx context.Context, urls [3]string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := uc.store.Delete(ctx, u); err != nil {
			uc.log.Warn().Err(err).Str("url", u).Msg("falha ao remover documento órfão")
		}
	}
}
