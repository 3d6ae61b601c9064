package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// ClientFilter filtros da listagem de clientes. CreatedBy e PartnerID são
// preenchidos pelo use case conforme o papel do solicitante, nunca pelo caller.
type ClientFilter struct {
	Status    entity.Status // vazio = todos
	Search    string        // busca em name, razao_social, cnpj, protocol
	CreatedBy *uuid.UUID
	PartnerID *uuid.UUID
	Page      int
	PerPage   int
}

// ClientRepository define a porta de persistência de clientes.
// Métodos de leitura devolvem (nil, nil) quando o registro não existe.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.Client, error)
	GetByEmail(ctx context.Context, email string) (*entity.Client, error)
	GetByProtocol(ctx context.Context, protocol string) (*entity.Client, error)
	ProtocolExists(ctx context.Context, protocol string) (bool, error)
	// List devolve a página filtrada e o total de registros que casam com o filtro.
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, int, error)
	Update(ctx context.Context, client *entity.Client) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.Status) error
	UpdateDocuments(ctx context.Context, id uuid.UUID, documentURL, invoiceURL, energyBillURL *string) error
	// Delete remove o cliente; client_flags e sales_reports caem por cascata.
	Delete(ctx context.Context, id uuid.UUID) error
}
