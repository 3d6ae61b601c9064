package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// CreateFlagRequest entrada para criar uma bandeira.
type CreateFlagRequest struct {
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *CreateFlagRequest) Validate() []string {
	r.Name = Sanitize(r.Name)
	r.Code = Sanitize(r.Code)
	r.Description = Sanitize(r.Description)

	var errs []string
	if r.Name == "" {
		errs = append(errs, "name é obrigatório")
	}
	if r.Code == "" {
		errs = append(errs, "code é obrigatório")
	}
	if r.Price.IsNegative() {
		errs = append(errs, "price não pode ser negativo")
	}
	return errs
}

// UpdateFlagRequest entrada para atualizar uma bandeira (campos opcionais).
type UpdateFlagRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	IsActive    *bool            `json:"is_active"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *UpdateFlagRequest) Validate() []string {
	var errs []string
	if r.Name != nil {
		*r.Name = Sanitize(*r.Name)
		if *r.Name == "" {
			errs = append(errs, "name não pode ser vazio")
		}
	}
	if r.Description != nil {
		*r.Description = Sanitize(*r.Description)
	}
	if r.Price != nil && r.Price.IsNegative() {
		errs = append(errs, "price não pode ser negativo")
	}
	return errs
}

// FlagResponse projeção de bandeira nas respostas.
type FlagResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewFlagResponse converte a entidade para a projeção de resposta.
func NewFlagResponse(f *entity.Flag) FlagResponse {
	return FlagResponse{
		ID:          f.ID,
		Name:        f.Name,
		Code:        f.Code,
		Description: f.Description,
		Price:       f.Price,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
	}
}
