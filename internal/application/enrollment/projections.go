package enrollment

import (
	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// fullProjection projeção completa (admin e vendedor dono).
func (uc *UseCase) fullProjection(c *entity.Client, flags []*entity.ClientFlag) dto.ClientResponse {
	return dto.ClientResponse{
		ID:                c.ID,
		Protocol:          c.Protocol,
		Name:              c.Name,
		RazaoSocial:       c.RazaoSocial,
		RamoAtividade:     c.RamoAtividade,
		TipoCartao:        c.TipoCartao,
		CNPJ:              c.CNPJ,
		InscricaoEstadual: c.InscricaoEstadual,
		Email:             c.Email,
		Telefone:          c.Telefone,
		Rua:               c.Rua,
		Numero:            c.Numero,
		Complemento:       c.Complemento,
		Bairro:            c.Bairro,
		Cidade:            c.Cidade,
		Estado:            c.Estado,
		CEP:               c.CEP,
		Banco:             c.Banco,
		Agencia:           c.Agencia,
		Conta:             c.Conta,
		Digito:            c.Digito,
		PlanID:            c.PlanID,
		TotalValue:        c.TotalValue,
		Status:            c.Status,
		PartnerID:         c.PartnerID,
		CreatedBy:         c.CreatedBy,
		Notes:             c.Notes,
		DocumentURL:       c.DocumentURL,
		InvoiceURL:        c.InvoiceURL,
		EnergyBillURL:     c.EnergyBillURL,
		Flags:             dto.NewClientFlagResponses(flags),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// partnerProjection projeção limitada para parceiros.
func (uc *UseCase) partnerProjection(c *entity.Client, flags []*entity.ClientFlag) dto.PartnerClientResponse {
	return dto.PartnerClientResponse{
		ID:          c.ID,
		Protocol:    c.Protocol,
		Name:        c.Name,
		RazaoSocial: c.RazaoSocial,
		TipoCartao:  c.TipoCartao,
		Telefone:    c.Telefone,
		Status:      c.Status,
		Notes:       c.Notes,
		Flags:       dto.NewClientFlagResponses(flags),
		CreatedAt:   c.CreatedAt,
	}
}

// publicProjection projeção da consulta pública: só o que o solicitante
// anônimo precisa ver.
func (uc *UseCase) publicProjection(c *entity.Client, planName string, flags []*entity.ClientFlag) dto.PublicStatusResponse {
	bandeiras := make([]dto.PublicFlagStatus, 0, len(flags))
	for _, cf := range flags {
		bandeiras = append(bandeiras, dto.PublicFlagStatus{Bandeira: cf.FlagName, Status: cf.Status})
	}
	observacoes := c.Notes
	if observacoes == "" {
		observacoes = "Nenhuma observação"
	}
	return dto.PublicStatusResponse{
		NomeEmpresa:  c.RazaoSocial,
		Protocolo:    c.Protocol,
		Plano:        planName,
		Status:       c.Status,
		Bandeiras:    bandeiras,
		Observacoes:  observacoes,
		DataCadastro: c.CreatedAt,
	}
}
