package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// SaleEntry uma venda do livro nas respostas de relatório.
type SaleEntry struct {
	ID          uuid.UUID       `json:"id"`
	ClientName  string          `json:"client_name"`
	Protocol    string          `json:"protocol"`
	PlanName    string          `json:"plan_name"`
	TotalValue  decimal.Decimal `json:"total_value"`
	SellerName  string          `json:"seller_name"`
	PartnerName string          `json:"partner_name,omitempty"`
	SaleDate    time.Time       `json:"sale_date"`
}

// NewSaleEntries converte os registros do livro para a resposta.
func NewSaleEntries(reports []*entity.SalesReport) []SaleEntry {
	out := make([]SaleEntry, 0, len(reports))
	for _, s := range reports {
		out = append(out, SaleEntry{
			ID:          s.ID,
			ClientName:  s.ClientName,
			Protocol:    s.Protocol,
			PlanName:    s.PlanName,
			TotalValue:  s.TotalValue,
			SellerName:  s.SellerName,
			PartnerName: s.PartnerName,
			SaleDate:    s.SaleDate,
		})
	}
	return out
}

// SellerTotal agregação por vendedor.
type SellerTotal struct {
	SellerID   uuid.UUID       `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	Count      int             `json:"count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// PlanTotal agregação por plano.
type PlanTotal struct {
	PlanID   uuid.UUID       `json:"plan_id"`
	PlanName string          `json:"plan_name"`
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// PartnerTotal agregação por parceiro ("Direto" para vendas sem indicação).
type PartnerTotal struct {
	PartnerID   *uuid.UUID      `json:"partner_id,omitempty"`
	PartnerName string          `json:"partner_name"`
	Count       int             `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// MonthTotal agregação por mês.
type MonthTotal struct {
	Month   int             `json:"month"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DailyReportResponse relatório de um dia.
type DailyReportResponse struct {
	Date     string          `json:"date"`
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
	BySeller []SellerTotal   `json:"by_seller"`
	ByPlan   []PlanTotal     `json:"by_plan"`
	Sales    []SaleEntry     `json:"sales"`
}

// MonthlyReportResponse relatório de um mês.
type MonthlyReportResponse struct {
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
	BySeller  []SellerTotal   `json:"by_seller"`
	ByPlan    []PlanTotal     `json:"by_plan"`
	ByPartner []PartnerTotal  `json:"by_partner"`
}

// YearlyReportResponse relatório de um ano, mês a mês.
type YearlyReportResponse struct {
	Year    int             `json:"year"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	ByMonth []MonthTotal    `json:"by_month"`
	ByPlan  []PlanTotal     `json:"by_plan"`
}

// PartnerReportResponse vendas indicadas por um parceiro.
type PartnerReportResponse struct {
	PartnerID uuid.UUID       `json:"partner_id"`
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
	Sales     []SaleEntry     `json:"sales"`
}

// NewSellerTotals converte a agregação do repositório.
func NewSellerTotals(rows []repository.SellerSales) []SellerTotal {
	out := make([]SellerTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, SellerTotal{SellerID: r.SellerID, SellerName: r.SellerName, Count: r.Count, Revenue: r.Revenue})
	}
	return out
}

// NewPlanTotals converte a agregação do repositório.
func NewPlanTotals(rows []repository.PlanSales) []PlanTotal {
	out := make([]PlanTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, PlanTotal{PlanID: r.PlanID, PlanName: r.PlanName, Count: r.Count, Revenue: r.Revenue})
	}
	return out
}

// NewPartnerTotals converte a agregação do repositório.
func NewPartnerTotals(rows []repository.PartnerSales) []PartnerTotal {
	out := make([]PartnerTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, PartnerTotal{PartnerID: r.PartnerID, PartnerName: r.PartnerName, Count: r.Count, Revenue: r.Revenue})
	}
	return out
}

// NewMonthTotals converte a agregação do repositório.
func NewMonthTotals(rows []repository.MonthSales) []MonthTotal {
	out := make([]MonthTotal, 0, len(rows))
	for _, r := range rows {
		out = append(out, MonthTotal{Month: r.Month, Count: r.Count, Revenue: r.Revenue})
	}
	return out
}
