package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tipos de cartão aceitos no credenciamento.
const (
	CardAlimentacao = "alimentacao"
	CardRefeicao    = "refeicao"
	CardAmbos       = "ambos"
)

// ValidCardType informa se o tipo de cartão é reconhecido.
func ValidCardType(t string) bool {
	return t == CardAlimentacao || t == CardRefeicao || t == CardAmbos
}

// Client empresa cliente credenciada (ou em credenciamento) nas bandeiras.
// Protocol, TotalValue e Status são atribuídos pelo sistema e nunca editáveis
// pelo caller; as URLs de documento só mudam pelo fluxo de upload.
type Client struct {
	ID       uuid.UUID `json:"id"`
	Protocol string    `json:"protocol"`

	// Identificação
	Name              string `json:"name"`
	RazaoSocial       string `json:"razao_social"`
	RamoAtividade     string `json:"ramo_atividade"`
	TipoCartao        string `json:"tipo_cartao"`
	CNPJ              string `json:"cnpj"`
	InscricaoEstadual string `json:"inscricao_estadual,omitempty"`

	// Contato
	Email    string `json:"email"`
	Telefone string `json:"telefone"`

	// Endereço
	Rua         string `json:"rua"`
	Numero      string `json:"numero"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	CEP         string `json:"cep"`

	// Dados bancários (opcionais)
	Banco   string `json:"banco,omitempty"`
	Agencia string `json:"agencia,omitempty"`
	Conta   string `json:"conta,omitempty"`
	Digito  string `json:"digito,omitempty"`

	// Matrícula
	PlanID     uuid.UUID       `json:"plan_id"`
	TotalValue decimal.Decimal `json:"total_value"`
	Status     Status          `json:"status"`
	PartnerID  *uuid.UUID      `json:"partner_id,omitempty"`
	CreatedBy  uuid.UUID       `json:"created_by"`
	Notes      string          `json:"notes,omitempty"`

	// Documentos anexados
	DocumentURL   string `json:"document_url,omitempty"`
	InvoiceURL    string `json:"invoice_url,omitempty"`
	EnergyBillURL string `json:"energy_bill_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
