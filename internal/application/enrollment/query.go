package enrollment

import (
	"context"

	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// ListFilter filtros da listagem vindos da query string.
type ListFilter struct {
	Status  string
	Search  string
	Page    int
	PerPage int
}

// List devolve a página de clientes visível ao ator: admin vê tudo, vendedor
// vê os que cadastrou, parceiro vê os que indicou (projeção limitada).
func (uc *UseCase) List(ctx context.Context, actor Actor, f ListFilter) (*dto.ClientListResponse, error) {
	if f.Status != "" && !entity.ValidStatus(entity.Status(f.Status)) {
		return nil, domain.ErrInvalidInput
	}

	filter := repository.ClientFilter{
		Status:  entity.Status(f.Status),
		Search:  f.Search,
		Page:    f.Page,
		PerPage: f.PerPage,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleUser:
		id := actor.ID
		filter.CreatedBy = &id
	case entity.RolePartner:
		id := actor.ID
		filter.PartnerID = &id
	default:
		return nil, domain.ErrForbidden
	}

	clients, total, err := uc.clients.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := dto.NewPageResponse(filter.Page, filter.PerPage, total)

	if actor.Role == entity.RolePartner {
		items := make([]dto.PartnerClientResponse, 0, len(clients))
		for _, c := range clients {
			flags, err := uc.clientFlags.ListByClient(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			items = append(items, uc.partnerProjection(c, flags))
		}
		return &dto.ClientListResponse{Items: items, Page: page}, nil
	}

	items := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		flags, err := uc.clientFlags.ListByClient(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, uc.fullProjection(c, flags))
	}
	return &dto.ClientListResponse{Items: items, Page: page}, nil
}

// Get devolve o cliente na projeção do papel: admin e vendedor dono veem
// tudo; parceiro que indicou vê a projeção limitada; o resto recebe 403.
func (uc *UseCase) Get(ctx context.Context, actor Actor, id uuid.UUID) (any, error) {
	client, err := uc.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	flags, err := uc.clientFlags.ListByClient(ctx, client.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case actor.IsAdmin(), actor.Role == entity.RoleUser && client.CreatedBy == actor.ID:
		return uc.fullProjection(client, flags), nil
	case actor.Role == entity.RolePartner && client.PartnerID != nil && *client.PartnerID == actor.ID:
		return uc.partnerProjection(client, flags), nil
	default:
		return nil, domain.ErrForbidden
	}
}

// authorizeOwner libera admin ou o vendedor que cadastrou; o resto 403.
func (uc *UseCase) authorizeOwner(actor Actor, client *entity.Client) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Role == entity.RoleUser && client.CreatedBy == actor.ID {
		return nil
	}
	return domain.ErrForbidden
}
