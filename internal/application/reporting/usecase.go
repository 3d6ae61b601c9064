// Package reporting agrega o livro de vendas em relatórios diário, mensal,
// anual e por parceiro. As agregações rodam em SQL; aqui só se monta a
// resposta.
package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// UseCase casos de uso de relatórios de vendas.
type UseCase struct {
	sales repository.SalesReportRepository
	pdf   PDFGenerator
}

// NewUseCase constrói o caso de uso de relatórios.
func NewUseCase(sales repository.SalesReportRepository, pdf PDFGenerator) *UseCase {
	return &UseCase{sales: sales, pdf: pdf}
}

// Daily relatório de um dia (admin).
func (uc *UseCase) Daily(ctx context.Context, date time.Time) (*dto.DailyReportResponse, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	totals, err := uc.sales.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	bySeller, err := uc.sales.BySeller(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byPlan, err := uc.sales.ByPlan(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sales, err := uc.sales.List(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.DailyReportResponse{
		Date:     start.Format("2006-01-02"),
		Count:    totals.Count,
		Revenue:  totals.Revenue,
		BySeller: dto.NewSellerTotals(bySeller),
		ByPlan:   dto.NewPlanTotals(byPlan),
		Sales:    dto.NewSaleEntries(sales),
	}, nil
}

// Monthly relatório de um mês (admin).
func (uc *UseCase) Monthly(ctx context.Context, month, year int) (*dto.MonthlyReportResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: mês fora de 1..12", domain.ErrInvalidInput)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	totals, err := uc.sales.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	bySeller, err := uc.sales.BySeller(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byPlan, err := uc.sales.ByPlan(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byPartner, err := uc.sales.ByPartner(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.MonthlyReportResponse{
		Month:     month,
		Year:      year,
		Count:     totals.Count,
		Revenue:   totals.Revenue,
		BySeller:  dto.NewSellerTotals(bySeller),
		ByPlan:    dto.NewPlanTotals(byPlan),
		ByPartner: dto.NewPartnerTotals(byPartner),
	}, nil
}

// MonthlyPDF relatório mensal renderizado em PDF A4.
func (uc *UseCase) MonthlyPDF(ctx context.Context, month, year int) ([]byte, error) {
	report, err := uc.Monthly(ctx, month, year)
	if err != nil {
		return nil, err
	}
	return uc.pdf.MonthlyReportPDF(report)
}

// Yearly relatório de um ano, mês a mês (admin).
func (uc *UseCase) Yearly(ctx context.Context, year int) (*dto.YearlyReportResponse, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	totals, err := uc.sales.Totals(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byMonth, err := uc.sales.ByMonth(ctx, year)
	if err != nil {
		return nil, err
	}
	byPlan, err := uc.sales.ByPlan(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &dto.YearlyReportResponse{
		Year:    year,
		Count:   totals.Count,
		Revenue: totals.Revenue,
		ByMonth: dto.NewMonthTotals(byMonth),
		ByPlan:  dto.NewPlanTotals(byPlan),
	}, nil
}

// Partner vendas indicadas pelo parceiro. Admin consulta qualquer um;
// parceiro só a si mesmo.
func (uc *UseCase) Partner(ctx context.Context, actorID uuid.UUID, actorRole string, partnerID uuid.UUID) (*dto.PartnerReportResponse, error) {
	switch actorRole {
	case entity.RoleAdmin:
	case entity.RolePartner:
		if actorID != partnerID {
			return nil, domain.ErrForbidden
		}
	default:
		return nil, domain.ErrForbidden
	}

	sales, err := uc.sales.ListByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.TotalValue)
	}

	return &dto.PartnerReportResponse{
		PartnerID: partnerID,
		Count:     len(sales),
		Revenue:   revenue,
		Sales:     dto.NewSaleEntries(sales),
	}, nil
}
