package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/domain/cnpj"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

var ufs = map[string]bool{
	"AC": true, "AL": true, "AP": true, "AM": true, "BA": true, "CE": true,
	"DF": true, "ES": true, "GO": true, "MA": true, "MT": true, "MS": true,
	"MG": true, "PA": true, "PB": true, "PR": true, "PE": true, "PI": true,
	"RJ": true, "RN": true, "RS": true, "RO": true, "RR": true, "SC": true,
	"SP": true, "SE": true, "TO": true,
}

// CreateClientRequest entrada do cadastro de cliente. Vem de um form
// multipart: o handler copia os campos de texto e os arquivos vêm à parte.
type CreateClientRequest struct {
	Name              string `json:"name" form:"name"`
	RazaoSocial       string `json:"razao_social" form:"razao_social"`
	RamoAtividade     string `json:"ramo_atividade" form:"ramo_atividade"`
	TipoCartao        string `json:"tipo_cartao" form:"tipo_cartao"`
	CNPJ              string `json:"cnpj" form:"cnpj"`
	InscricaoEstadual string `json:"inscricao_estadual" form:"inscricao_estadual"`
	Email             string `json:"email" form:"email"`
	Telefone          string `json:"telefone" form:"telefone"`
	Rua               string `json:"rua" form:"rua"`
	Numero            string `json:"numero" form:"numero"`
	Complemento       string `json:"complemento" form:"complemento"`
	Bairro            string `json:"bairro" form:"bairro"`
	Cidade            string `json:"cidade" form:"cidade"`
	Estado            string `json:"estado" form:"estado"`
	CEP               string `json:"cep" form:"cep"`
	Banco             string `json:"banco" form:"banco"`
	Agencia           string `json:"agencia" form:"agencia"`
	Conta             string `json:"conta" form:"conta"`
	Digito            string `json:"digito" form:"digito"`
	PlanID            string `json:"plan_id" form:"plan_id"`
	SelectedFlags     string `json:"selected_flags" form:"selected_flags"`
	PartnerID         string `json:"partner_id" form:"partner_id"`
	Notes             string `json:"notes" form:"notes"`

	// Preenchidos por Validate a partir dos campos crus.
	PlanUUID    uuid.UUID   `json:"-"`
	FlagIDs     []uuid.UUID `json:"-"`
	PartnerUUID *uuid.UUID  `json:"-"`
}

// Validate sanitiza, normaliza e valida o cadastro. Devolve as mensagens de
// validação (vazio = ok); os campos derivados (PlanUUID, FlagIDs,
// PartnerUUID) ficam preenchidos em caso de sucesso.
func (r *CreateClientRequest) Validate() []string {
	r.Name = Sanitize(r.Name)
	r.RazaoSocial = Sanitize(r.RazaoSocial)
	r.RamoAtividade = Sanitize(r.RamoAtividade)
	r.TipoCartao = Sanitize(r.TipoCartao)
	r.CNPJ = cnpj.Normalize(r.CNPJ)
	r.InscricaoEstadual = Sanitize(r.InscricaoEstadual)
	r.Email = strings.ToLower(Sanitize(r.Email))
	r.Telefone = digitsOnly(r.Telefone)
	r.Rua = Sanitize(r.Rua)
	r.Numero = Sanitize(r.Numero)
	r.Complemento = Sanitize(r.Complemento)
	r.Bairro = Sanitize(r.Bairro)
	r.Cidade = Sanitize(r.Cidade)
	r.Estado = strings.ToUpper(Sanitize(r.Estado))
	r.CEP = digitsOnly(r.CEP)
	r.Banco = Sanitize(r.Banco)
	r.Agencia = Sanitize(r.Agencia)
	r.Conta = Sanitize(r.Conta)
	r.Digito = Sanitize(r.Digito)
	r.Notes = Sanitize(r.Notes)

	var errs []string
	require := func(value, field string) {
		if value == "" {
			errs = append(errs, field+" é obrigatório")
		}
	}
	require(r.Name, "name")
	require(r.RazaoSocial, "razao_social")
	require(r.RamoAtividade, "ramo_atividade")
	require(r.Rua, "rua")
	require(r.Numero, "numero")
	require(r.Bairro, "bairro")
	require(r.Cidade, "cidade")

	if !entity.ValidCardType(r.TipoCartao) {
		errs = append(errs, "tipo_cartao deve ser alimentacao, refeicao ou ambos")
	}
	if !cnpj.Valid(r.CNPJ) {
		errs = append(errs, "cnpj inválido")
	}
	if r.Email == "" || !ValidEmail(r.Email) {
		errs = append(errs, "email inválido")
	}
	if len(r.Telefone) < 10 || len(r.Telefone) > 11 {
		errs = append(errs, "telefone deve ter 10 ou 11 dígitos")
	}
	if !ufs[r.Estado] {
		errs = append(errs, "estado deve ser uma UF válida")
	}
	if len(r.CEP) != 8 {
		errs = append(errs, "cep deve ter 8 dígitos")
	}

	planID, err := uuid.Parse(Sanitize(r.PlanID))
	if err != nil {
		errs = append(errs, "plan_id inválido")
	} else {
		r.PlanUUID = planID
	}

	flagIDs, err := parseFlagIDs(r.SelectedFlags)
	if err != nil {
		errs = append(errs, "selected_flags deve ser uma lista de UUIDs")
	} else if len(flagIDs) == 0 {
		errs = append(errs, "selecione pelo menos uma bandeira")
	} else {
		r.FlagIDs = flagIDs
	}

	if p := Sanitize(r.PartnerID); p != "" {
		partnerID, err := uuid.Parse(p)
		if err != nil {
			errs = append(errs, "partner_id inválido")
		} else {
			r.PartnerUUID = &partnerID
		}
	}

	return errs
}

// parseFlagIDs aceita tanto um array JSON quanto uma string com um único
// UUID (forms serializam a lista como string JSON).
func parseFlagIDs(raw string) ([]uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var items []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, err
		}
	} else {
		items = []string{raw}
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(strings.TrimSpace(item))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpdateClientRequest atualização dos campos editáveis do cliente.
// Protocol, total_value, status e documentos nunca passam por aqui.
type UpdateClientRequest struct {
	Name              *string `json:"name"`
	RazaoSocial       *string `json:"razao_social"`
	RamoAtividade     *string `json:"ramo_atividade"`
	TipoCartao        *string `json:"tipo_cartao"`
	InscricaoEstadual *string `json:"inscricao_estadual"`
	Email             *string `json:"email"`
	Telefone          *string `json:"telefone"`
	Rua               *string `json:"rua"`
	Numero            *string `json:"numero"`
	Complemento       *string `json:"complemento"`
	Bairro            *string `json:"bairro"`
	Cidade            *string `json:"cidade"`
	Estado            *string `json:"estado"`
	CEP               *string `json:"cep"`
	Banco             *string `json:"banco"`
	Agencia           *string `json:"agencia"`
	Conta             *string `json:"conta"`
	Digito            *string `json:"digito"`
	PartnerID         *string `json:"partner_id"`
	Notes             *string `json:"notes"`

	PartnerUUID  *uuid.UUID `json:"-"`
	ClearPartner bool       `json:"-"`
}

// Validate sanitiza e valida os campos presentes. Devolve as mensagens de
// validação (vazio = ok).
func (r *UpdateClientRequest) Validate() []string {
	var errs []string

	sanitizePtr := func(p *string) {
		if p != nil {
			*p = Sanitize(*p)
		}
	}
	sanitizePtr(r.Name)
	sanitizePtr(r.RazaoSocial)
	sanitizePtr(r.RamoAtividade)
	sanitizePtr(r.InscricaoEstadual)
	sanitizePtr(r.Rua)
	sanitizePtr(r.Numero)
	sanitizePtr(r.Complemento)
	sanitizePtr(r.Bairro)
	sanitizePtr(r.Cidade)
	sanitizePtr(r.Banco)
	sanitizePtr(r.Agencia)
	sanitizePtr(r.Conta)
	sanitizePtr(r.Digito)
	sanitizePtr(r.Notes)

	requireNonEmpty := func(p *string, field string) {
		if p != nil && *p == "" {
			errs = append(errs, field+" não pode ser vazio")
		}
	}
	requireNonEmpty(r.Name, "name")
	requireNonEmpty(r.RazaoSocial, "razao_social")
	requireNonEmpty(r.RamoAtividade, "ramo_atividade")
	requireNonEmpty(r.Rua, "rua")
	requireNonEmpty(r.Numero, "numero")
	requireNonEmpty(r.Bairro, "bairro")
	requireNonEmpty(r.Cidade, "cidade")

	if r.TipoCartao != nil {
		*r.TipoCartao = Sanitize(*r.TipoCartao)
		if !entity.ValidCardType(*r.TipoCartao) {
			errs = append(errs, "tipo_cartao deve ser alimentacao, refeicao ou ambos")
		}
	}
	if r.Email != nil {
		*r.Email = strings.ToLower(Sanitize(*r.Email))
		if !ValidEmail(*r.Email) {
			errs = append(errs, "email inválido")
		}
	}
	if r.Telefone != nil {
		*r.Telefone = digitsOnly(*r.Telefone)
		if len(*r.Telefone) < 10 || len(*r.Telefone) > 11 {
			errs = append(errs, "telefone deve ter 10 ou 11 dígitos")
		}
	}
	if r.Estado != nil {
		*r.Estado = strings.ToUpper(Sanitize(*r.Estado))
		if !ufs[*r.Estado] {
			errs = append(errs, "estado deve ser uma UF válida")
		}
	}
	if r.CEP != nil {
		*r.CEP = digitsOnly(*r.CEP)
		if len(*r.CEP) != 8 {
			errs = append(errs, "cep deve ter 8 dígitos")
		}
	}
	if r.PartnerID != nil {
		p := Sanitize(*r.PartnerID)
		if p == "" {
			r.ClearPartner = true
		} else if partnerID, err := uuid.Parse(p); err != nil {
			errs = append(errs, "partner_id inválido")
		} else {
			r.PartnerUUID = &partnerID
		}
	}

	return errs
}

// UpdateFlagStatusRequest mudança do status de uma bandeira do cliente.
type UpdateFlagStatusRequest struct {
	Status string `json:"status"`
}

// Validate devolve as mensagens de validação (vazio = ok).
func (r *UpdateFlagStatusRequest) Validate() []string {
	r.Status = Sanitize(r.Status)
	if !entity.ValidStatus(entity.Status(r.Status)) {
		return []string{"status deve ser pending, in_analysis ou approved"}
	}
	return nil
}

// ClientFlagResponse projeção de um vínculo cliente-bandeira.
type ClientFlagResponse struct {
	ID              uuid.UUID       `json:"id"`
	FlagID          uuid.UUID       `json:"flag_id"`
	FlagName        string          `json:"flag_name"`
	FlagPrice       decimal.Decimal `json:"flag_price"`
	Status          entity.Status   `json:"status"`
	StatusUpdatedAt *time.Time      `json:"status_updated_at,omitempty"`
}

// NewClientFlagResponses converte os vínculos para a projeção de resposta.
func NewClientFlagResponses(flags []*entity.ClientFlag) []ClientFlagResponse {
	out := make([]ClientFlagResponse, 0, len(flags))
	for _, cf := range flags {
		out = append(out, ClientFlagResponse{
			ID:              cf.ID,
			FlagID:          cf.FlagID,
			FlagName:        cf.FlagName,
			FlagPrice:       cf.FlagPrice,
			Status:          cf.Status,
			StatusUpdatedAt: cf.StatusUpdatedAt,
		})
	}
	return out
}

// ClientResponse projeção completa (admin e vendedor dono).
type ClientResponse struct {
	ID                uuid.UUID            `json:"id"`
	Protocol          string               `json:"protocol"`
	Name              string               `json:"name"`
	RazaoSocial       string               `json:"razao_social"`
	RamoAtividade     string               `json:"ramo_atividade"`
	TipoCartao        string               `json:"tipo_cartao"`
	CNPJ              string               `json:"cnpj"`
	InscricaoEstadual string               `json:"inscricao_estadual,omitempty"`
	Email             string               `json:"email"`
	Telefone          string               `json:"telefone"`
	Rua               string               `json:"rua"`
	Numero            string               `json:"numero"`
	Complemento       string               `json:"complemento,omitempty"`
	Bairro            string               `json:"bairro"`
	Cidade            string               `json:"cidade"`
	Estado            string               `json:"estado"`
	CEP               string               `json:"cep"`
	Banco             string               `json:"banco,omitempty"`
	Agencia           string               `json:"agencia,omitempty"`
	Conta             string               `json:"conta,omitempty"`
	Digito            string               `json:"digito,omitempty"`
	PlanID            uuid.UUID            `json:"plan_id"`
	TotalValue        decimal.Decimal      `json:"total_value"`
	Status            entity.Status        `json:"status"`
	PartnerID         *uuid.UUID           `json:"partner_id,omitempty"`
	CreatedBy         uuid.UUID            `json:"created_by"`
	Notes             string               `json:"notes,omitempty"`
	DocumentURL       string               `json:"document_url,omitempty"`
	InvoiceURL        string               `json:"invoice_url,omitempty"`
	EnergyBillURL     string               `json:"energy_bill_url,omitempty"`
	Flags             []ClientFlagResponse `json:"flags,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// PartnerClientResponse projeção limitada para parceiros: sem endereço,
// banco, CNPJ nem URLs de documento.
type PartnerClientResponse struct {
	ID          uuid.UUID            `json:"id"`
	Protocol    string               `json:"protocol"`
	Name        string               `json:"name"`
	RazaoSocial string               `json:"razao_social"`
	TipoCartao  string               `json:"tipo_cartao"`
	Telefone    string               `json:"telefone"`
	Status      entity.Status        `json:"status"`
	Notes       string               `json:"notes,omitempty"`
	Flags       []ClientFlagResponse `json:"flags,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PublicFlagStatus item da consulta pública: bandeira + status.
type PublicFlagStatus struct {
	Bandeira string        `json:"bandeira"`
	Status   entity.Status `json:"status"`
}

// PublicStatusResponse projeção pública da consulta de status: nada de
// endereço, banco, URLs de documento nem identificadores internos.
type PublicStatusResponse struct {
	NomeEmpresa  string             `json:"nome_empresa"`
	Protocolo    string             `json:"protocolo"`
	Plano        string             `json:"plano"`
	Status       entity.Status      `json:"status"`
	Bandeiras    []PublicFlagStatus `json:"bandeiras"`
	Observacoes  string             `json:"observacoes"`
	DataCadastro time.Time          `json:"data_cadastro"`
}

// ClientListResponse listagem paginada de clientes. Items carrega a projeção
// adequada ao papel do solicitante.
type ClientListResponse struct {
	Items any          `json:"items"`
	Page  PageResponse `json:"page"`
}
