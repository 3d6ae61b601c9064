package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// CreatePlanRequest entrada para criar um plano.
type CreatePlanRequest struct {
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	FlagCount   int             `json:"flag_count"`
	Price       decimal.Decimal `json:"price"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *CreatePlanRequest) Validate() []string {
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
	if r.FlagCount < 0 {
		errs = append(errs, "flag_count não pode ser negativo")
	}
	if r.Price.IsNegative() {
		errs = append(errs, "price não pode ser negativo")
	}
	return errs
}

// UpdatePlanRequest entrada para atualizar um plano (campos opcionais).
type UpdatePlanRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	FlagCount   *int             `json:"flag_count"`
	Price       *decimal.Decimal `json:"price"`
	IsActive    *bool            `json:"is_active"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *UpdatePlanRequest) Validate() []string {
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
	if r.FlagCount != nil && *r.FlagCount < 0 {
		errs = append(errs, "flag_count não pode ser negativo")
	}
	if r.Price != nil && r.Price.IsNegative() {
		errs = append(errs, "price não pode ser negativo")
	}
	return errs
}

// PlanResponse projeção de plano nas respostas.
type PlanResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
	FlagCount   int             `json:"flag_count"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewPlanResponse converte a entidade para a projeção de resposta.
func NewPlanResponse(p *entity.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Description: p.Description,
		FlagCount:   p.FlagCount,
		Price:       p.Price,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
	}
}
