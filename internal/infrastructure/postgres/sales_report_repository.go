package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/credsim/bandeiras-api/internal/domain/entity"
	"github.com/credsim/bandeiras-api/internal/domain/repository"
)

var _ repository.SalesReportRepository = (*SalesReportRepo)(nil)

const salesReportColumns = `id, client_id, client_name, protocol, plan_id, plan_name, total_value,
	seller_id, seller_name, partner_id, partner_name, sale_date, sale_day, sale_month, sale_year, created_at`

// SalesReportRepo implementação do SalesReportRepository sobre PostgreSQL
// (pool ou tx). Só insere e lê: o livro de vendas é imutável.
type SalesReportRepo struct {
	q Querier
}

// NewSalesReportRepository constrói o adaptador do livro de vendas.
func NewSalesReportRepository(q Querier) *SalesReportRepo {
	return &SalesReportRepo{q: q}
}

// Create persiste o registro de venda.
func (r *SalesReportRepo) Create(ctx context.Context, s *entity.SalesReport) error {
	query := `
		INSERT INTO sales_reports (` + salesReportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ClientID, s.ClientName, s.Protocol, s.PlanID, s.PlanName, s.TotalValue,
		s.SellerID, s.SellerName, s.PartnerID, s.PartnerName, s.SaleDate,
		s.SaleDay, s.SaleMonth, s.SaleYear, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sales_report: %w", err)
	}
	return nil
}

// List devolve as vendas do intervalo [start, end), mais recentes primeiro.
func (r *SalesReportRepo) List(ctx context.Context, start, end time.Time) ([]*entity.SalesReport, error) {
	query := `SELECT ` + salesReportColumns + `
		FROM sales_reports WHERE sale_date >= $1 AND sale_date < $2 ORDER BY sale_date DESC`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list sales_reports: %w", err)
	}
	defer rows.Close()
	return scanSalesReports(rows)
}

// ListByPartner devolve as vendas indicadas pelo parceiro.
func (r *SalesReportRepo) ListByPartner(ctx context.Context, partnerID uuid.UUID) ([]*entity.SalesReport, error) {
	query := `SELECT ` + salesReportColumns + `
		FROM sales_reports WHERE partner_id = $1 ORDER BY sale_date DESC`
	rows, err := r.q.Query(ctx, query, partnerID)
	if err != nil {
		return nil, fmt.Errorf("list sales_reports by partner: %w", err)
	}
	defer rows.Close()
	return scanSalesReports(rows)
}

// Totals agrega contagem e receita do intervalo [start, end).
func (r *SalesReportRepo) Totals(ctx context.Context, start, end time.Time) (repository.ReportTotals, error) {
	var t repository.ReportTotals
	err := r.q.QueryRow(ctx, `
		SELECT count(*), COALESCE(sum(total_value), 0)
		FROM sales_reports WHERE sale_date >= $1 AND sale_date < $2`, start, end,
	).Scan(&t.Count, &t.Revenue)
	if err != nil {
		return repository.ReportTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	return t, nil
}

// BySeller agrega por vendedor, maior receita primeiro.
func (r *SalesReportRepo) BySeller(ctx context.Context, start, end time.Time) ([]repository.SellerSales, error) {
	rows, err := r.q.Query(ctx, `
		SELECT seller_id, seller_name, count(*), COALESCE(sum(total_value), 0)
		FROM sales_reports WHERE sale_date >= $1 AND sale_date < $2
		GROUP BY seller_id, seller_name
		ORDER BY 4 DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by seller: %w", err)
	}
	defer rows.Close()

	var list []repository.SellerSales
	for rows.Next() {
		var s repository.SellerSales
		if err := rows.Scan(&s.SellerID, &s.SellerName, &s.Count, &s.Revenue); err != nil {
			return nil, fmt.Errorf("scan seller sales: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// ByPlan agrega por plano, maior receita primeiro.
func (r *SalesReportRepo) ByPlan(ctx context.Context, start, end time.Time) ([]repository.PlanSales, error) {
	rows, err := r.q.Query(ctx, `
		SELECT plan_id, plan_name, count(*), COALESCE(sum(total_value), 0)
		FROM sales_reports WHERE sale_date >= $1 AND sale_date < $2
		GROUP BY plan_id, plan_name
		ORDER BY 4 DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by plan: %w", err)
	}
	defer rows.Close()

	var list []repository.PlanSales
	for rows.Next() {
		var p repository.PlanSales
		if err := rows.Scan(&p.PlanID, &p.PlanName, &p.Count, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan plan sales: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ByPartner agrega por parceiro; vendas sem indicação agrupam como "Direto".
func (r *SalesReportRepo) ByPartner(ctx context.Context, start, end time.Time) ([]repository.PartnerSales, error) {
	rows, err := r.q.Query(ctx, `
		SELECT partner_id, COALESCE(NULLIF(partner_name, ''), 'Direto'), count(*), COALESCE(sum(total_value), 0)
		FROM sales_reports WHERE sale_date >= $1 AND sale_date < $2
		GROUP BY partner_id, partner_name
		ORDER BY 4 DESC`, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by partner: %w", err)
	}
	defer rows.Close()

	var list []repository.PartnerSales
	for rows.Next() {
		var p repository.PartnerSales
		if err := rows.Scan(&p.PartnerID, &p.PartnerName, &p.Count, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan partner sales: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ByMonth agrega por mês do ano pedido, em ordem cronológica.
func (r *SalesReportRepo) ByMonth(ctx context.Context, year int) ([]repository.MonthSales, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sale_month, count(*), COALESCE(sum(total_value), 0)
		FROM sales_reports WHERE sale_year = $1
		GROUP BY sale_month
		ORDER BY sale_month`, year)
	if err != nil {
		return nil, fmt.Errorf("sales by month: %w", err)
	}
	defer rows.Close()

	var list []repository.MonthSales
	for rows.Next() {
		var m repository.MonthSales
		if err := rows.Scan(&m.Month, &m.Count, &m.Revenue); err != nil {
			return nil, fmt.Errorf("scan month sales: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanSalesReports(rows pgx.Rows) ([]*entity.SalesReport, error) {
	var list []*entity.SalesReport
	for rows.Next() {
		var s entity.SalesReport
		if err := rows.Scan(
			&s.ID, &s.ClientID, &s.ClientName, &s.Protocol, &s.PlanID, &s.PlanName, &s.TotalValue,
			&s.SellerID, &s.SellerName, &s.PartnerID, &s.PartnerName, &s.SaleDate,
			&s.SaleDay, &s.SaleMonth, &s.SaleYear, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sales_report: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
