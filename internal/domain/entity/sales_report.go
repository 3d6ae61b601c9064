package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesReport registro imutável de venda, criado 1:1 com o cliente na mesma
// transação do cadastro. Nome do cliente, plano, vendedor e parceiro são
// snapshots; day/month/year ficam desnormalizados para as agregações.
type SalesReport struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name"`
	Protocol    string          `json:"protocol"`
	PlanID      uuid.UUID       `json:"plan_id"`
	PlanName    string          `json:"plan_name"`
	TotalValue  decimal.Decimal `json:"total_value"`
	SellerID    uuid.UUID       `json:"seller_id"`
	SellerName  string          `json:"seller_name"`
	PartnerID   *uuid.UUID      `json:"partner_id,omitempty"`
	PartnerName string          `json:"partner_name,omitempty"`
	SaleDate    time.Time       `json:"sale_date"`
	SaleDay     int             `json:"sale_day"`
	SaleMonth   int             `json:"sale_month"`
	SaleYear    int             `json:"sale_year"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewSalesReport monta o registro de venda a partir dos snapshots.
func NewSalesReport(client *Client, clientName, planName, sellerName, partnerName string, saleDate time.Time) *SalesReport {
	return &SalesReport{
		ID:          uuid.New(),
		ClientID:    client.ID,
		ClientName:  clientName,
		Protocol:    client.Protocol,
		PlanID:      client.PlanID,
		PlanName:    planName,
		TotalValue:  client.TotalValue,
		SellerID:    client.CreatedBy,
		SellerName:  sellerName,
		PartnerID:   client.PartnerID,
		PartnerName: partnerName,
		SaleDate:    saleDate,
		SaleDay:     saleDate.Day(),
		SaleMonth:   int(saleDate.Month()),
		SaleYear:    saleDate.Year(),
		CreatedAt:   saleDate,
	}
}
