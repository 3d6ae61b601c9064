package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/application/reporting"
	"github.com/credsim/bandeiras-api/internal/domain"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

// fakeSalesRepo devolve agregados prontos e registra as janelas consultadas.
type fakeSalesRepo struct {
	reports []*entity.SalesReport

	lastStart time.Time
	lastEnd   time.Time
}

func (r *fakeSalesRepo) Create(_ context.Context, report *entity.SalesReport) error {
	r.reports = append(r.reports, report)
	return nil
}

func (r *fakeSalesRepo) List(_ context.Context, start, end time.Time) ([]*entity.SalesReport, error) {
	r.lastStart, r.lastEnd = start, end
	var out []*entity.SalesReport
	for _, s := range r.reports {
		if !s.SaleDate.Before(start) && s.SaleDate.Before(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSalesRepo) ListByPartner(_ context.Context, partnerID uuid.UUID) ([]*entity.SalesReport, error) {
	var out []*entity.SalesReport
	for _, s := range r.reports {
		if s.PartnerID != nil && *s.PartnerID == partnerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSalesRepo) Totals(_ context.Context, start, end time.Time) (repository.ReportTotals, error) {
	r.lastStart, r.lastEnd = start, end
	totals := repository.ReportTotals{Revenue: decimal.Zero}
	for _, s := range r.reports {
		if !s.SaleDate.Before(start) && s.SaleDate.Before(end) {
			totals.Count++
			totals.Revenue = totals.Revenue.Add(s.TotalValue)
		}
	}
	return totals, nil
}

func (r *fakeSalesRepo) BySeller(context.Context, time.Time, time.Time) ([]repository.SellerSales, error) {
	return nil, nil
}

func (r *fakeSalesRepo) ByPlan(context.Context, time.Time, time.Time) ([]repository.PlanSales, error) {
	return nil, nil
}

func (r *fakeSalesRepo) ByPartner(context.Context, time.Time, time.Time) ([]repository.PartnerSales, error) {
	return nil, nil
}

func (r *fakeSalesRepo) ByMonth(context.Context, int) ([]repository.MonthSales, error) {
	return nil, nil
}

type fakePDF struct {
	called bool
}

func (p *fakePDF) MonthlyReportPDF(*dto.MonthlyReportResponse) ([]byte, error) {
	p.called = true
	return []byte("%PDF-1.4 fake"), nil
}

func sale(value int64, date time.Time, partnerID *uuid.UUID) *entity.SalesReport {
	return &entity.SalesReport{
		ID:         uuid.New(),
		ClientName: "Cliente",
		Protocol:   "20260815-123456",
		PlanName:   "Individual",
		TotalValue: decimal.NewFromInt(value),
		SellerName: "Maria",
		PartnerID:  partnerID,
		SaleDate:   date,
	}
}

func TestDaily_JanelaDeUmDia(t *testing.T) {
	repo := &fakeSalesRepo{}
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	repo.reports = []*entity.SalesReport{
		sale(65, day.Add(10*time.Hour), nil),
		sale(150, day.Add(23*time.Hour), nil),
		sale(200, day.AddDate(0, 0, 1), nil), // dia seguinte, fora da janela
	}
	uc := reporting.NewUseCase(repo, &fakePDF{})

	out, err := uc.Daily(context.Background(), day.Add(15*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "2026-08-15", out.Date)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(215)))
	assert.Len(t, out.Sales, 2)
	assert.Equal(t, day, repo.lastStart)
	assert.Equal(t, day.AddDate(0, 0, 1), repo.lastEnd)
}

func TestMonthly_ValidaMes(t *testing.T) {
	uc := reporting.NewUseCase(&fakeSalesRepo{}, &fakePDF{})
	ctx := context.Background()

	_, err := uc.Monthly(ctx, 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Monthly(ctx, 13, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Monthly(ctx, 8, 2026)
	require.NoError(t, err)
	assert.Equal(t, 8, out.Month)
	assert.Equal(t, 2026, out.Year)
}

func TestMonthlyPDF_RenderizaRelatorio(t *testing.T) {
	pdf := &fakePDF{}
	uc := reporting.NewUseCase(&fakeSalesRepo{}, pdf)

	payload, err := uc.MonthlyPDF(context.Background(), 8, 2026)
	require.NoError(t, err)
	assert.True(t, pdf.called)
	assert.NotEmpty(t, payload)

	// Mês inválido nem chega no gerador.
	pdf.called = false
	_, err = uc.MonthlyPDF(context.Background(), 0, 2026)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, pdf.called)
}

func TestYearly_JanelaDoAno(t *testing.T) {
	repo := &fakeSalesRepo{}
	repo.reports = []*entity.SalesReport{
		sale(65, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), nil),
		sale(150, time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC), nil),
		sale(999, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), nil),
	}
	uc := reporting.NewUseCase(repo, &fakePDF{})

	out, err := uc.Yearly(context.Background(), 2026)
	require.NoError(t, err)
	assert.Equal(t, 2026, out.Year)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(215)))
}

func TestPartner_AutorizacaoESoma(t *testing.T) {
	partnerID := uuid.New()
	repo := &fakeSalesRepo{}
	repo.reports = []*entity.SalesReport{
		sale(65, time.Now(), &partnerID),
		sale(150, time.Now(), &partnerID),
		sale(999, time.Now(), nil), // venda direta, fora do relatório
	}
	uc := reporting.NewUseCase(repo, &fakePDF{})
	ctx := context.Background()

	// Admin consulta qualquer parceiro.
	out, err := uc.Partner(ctx, uuid.New(), entity.RoleAdmin, partnerID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.True(t, out.Revenue.Equal(decimal.NewFromInt(215)))

	// Parceiro consulta a si mesmo.
	out, err = uc.Partner(ctx, partnerID, entity.RolePartner, partnerID)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)

	// Parceiro não consulta outro parceiro; vendedor não consulta nenhum.
	_, err = uc.Partner(ctx, uuid.New(), entity.RolePartner, partnerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Partner(ctx, partnerID, entity.RoleUser, partnerID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
