package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// ReportTotals totais agregados de um período.
type ReportTotals struct {
	Count   int
	Revenue decimal.Decimal
}

// SellerSales vendas agregadas por vendedor.
type SellerSales struct {
	SellerID   uuid.UUID
	SellerName string
	Count      int
	Revenue    decimal.Decimal
}

// PlanSales vendas agregadas por plano.
type PlanSales struct {
	PlanID   uuid.UUID
	PlanName string
	Count    int
	Revenue  decimal.Decimal
}

// PartnerSales vendas agregadas por parceiro. PartnerID nulo agrupa as vendas
// sem indicação ("Direto").
type PartnerSales struct {
	PartnerID   *uuid.UUID
	PartnerName string
	Count       int
	Revenue     decimal.Decimal
}

// MonthSales vendas agregadas por mês de um ano.
type MonthSales struct {
	Month   int
	Count   int
	Revenue decimal.Decimal
}

// SalesReportRepository define a porta do livro de vendas. Registros são
// imutáveis após a criação; as agregações rodam em SQL.
type SalesReportRepository interface {
	Create(ctx context.Context, report *entity.SalesReport) error
	// List devolve as vendas do intervalo [start, end), mais recentes primeiro.
	List(ctx context.Context, start, end time.Time) ([]*entity.SalesReport, error)
	ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*entity.SalesReport, error)
	Totals(ctx context.Context, start, end time.Time) (ReportTotals, error)
	BySeller(ctx context.Context, start, end time.Time) ([]SellerSales, error)
	ByPlan(ctx context.Context, start, end time.Time) ([]PlanSales, error)
	ByPartner(ctx context.Context, start, end time.Time) ([]PartnerSales, error)
	ByMonth(ctx context.Context, year int) ([]MonthSales, error)
}
