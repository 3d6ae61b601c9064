package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Códigos de plano reconhecidos.
const (
	PlanIndividual = "individual" // preço = soma das bandeiras selecionadas
	PlanCombo5     = "combo_5"    // exatamente 5 bandeiras, preço fixo
	PlanCombo7     = "combo_7"    // exatamente 7 bandeiras, preço fixo
)

// Plan plano de credenciamento oferecido aos clientes.
type Plan struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Code        string          `json:"code"`
	Description string          `json:"description,omitempty"`
	FlagCount   int             `json:"flag_count"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RequiredFlagCount devolve a contagem exata de bandeiras exigida pelo plano,
// ou ok=false quando o plano não restringe a quantidade (individual e códigos
// futuros). A contagem é fixada pelo code do plano; FlagCount é apenas
// informativo e editável pelo admin, então não participa da regra.
func (p *Plan) RequiredFlagCount() (int, bool) {
	switch p.Code {
	case PlanCombo5:
		return 5, true
	case PlanCombo7:
		return 7, true
	default:
		return 0, false
	}
}

// IsIndividual informa se o preço do plano é derivado das bandeiras.
func (p *Plan) IsIndividual() bool {
	return p.Code == PlanIndividual
}
