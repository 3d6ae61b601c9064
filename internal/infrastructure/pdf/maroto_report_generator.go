// Package pdf renderiza o relatório mensal de vendas em PDF A4 com Maroto v2.
//
// Layout da página:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relatório Mensal de Vendas  │  Mês/Ano             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: total de vendas + receita                          │
//	│  TABELA: por plano (plano | vendas | receita)               │
//	│  TABELA: por vendedor (vendedor | vendas | receita)         │
//	│  TABELA: por parceiro (parceiro | vendas | receita)         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/application/reporting"
)

var _ reporting.PDFGenerator = (*MarotoReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var monthNames = [...]string{"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro"}

// MarotoReportGenerator implementa reporting.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// MonthlyReportPDF gera o PDF do relatório mensal e devolve seus bytes.
func (g *MarotoReportGenerator) MonthlyReportPDF(report *dto.MonthlyReportResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório Mensal de Vendas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRows("Vendas por plano", planRows(report.ByPlan))...)
	m.AddRows(sectionRows("Vendas por vendedor", sellerRows(report.BySeller))...)
	m.AddRows(sectionRows("Vendas por parceiro", partnerRows(report.ByPartner))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *dto.MonthlyReportResponse) core.Row {
	period := fmt.Sprintf("%s/%d", monthNames[report.Month], report.Year)
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RELATÓRIO MENSAL DE VENDAS", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
			text.New("Credenciamento de bandeiras de cartão-benefício", props.Text{
				Size: 8, Top: 10, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(period, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 4,
			}),
		),
	)
}

func summaryRow(report *dto.MonthlyReportResponse) core.Row {
	return row.New(12).Add(
		col.New(6).Add(
			text.New("Total de vendas", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1}),
			text.New(fmt.Sprintf("%d", report.Count), props.Text{Style: fontstyle.Bold, Size: 12, Top: 5}),
		),
		col.New(6).Add(
			text.New("Receita", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorGray, Top: 1, Align: align.Right}),
			text.New("R$ "+money(report.Revenue), props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 5, Align: align.Right, Color: colorPrimary,
			}),
		),
	)
}

// sectionRows título + cabeçalho + linhas de uma tabela de agregação.
func sectionRows(title string, body []core.Row) []core.Row {
	rows := []core.Row{
		row.New(9).Add(col.New(12).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 3}),
		)),
		tableHeaderRow(),
	}
	if len(body) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("sem vendas no período", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		)))
		return rows
	}
	return append(rows, body...)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Descrição", 6, align.Left),
		h("Vendas", 3, align.Center),
		h("Receita", 3, align.Right),
	)
}

func tableRow(name string, count int, revenue decimal.Decimal) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(3).Add(text.New(fmt.Sprintf("%d", count), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New("R$ "+money(revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func planRows(rows []dto.PlanTotal) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, tableRow(r.PlanName, r.Count, r.Revenue))
	}
	return out
}

func sellerRows(rows []dto.SellerTotal) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, tableRow(r.SellerName, r.Count, r.Revenue))
	}
	return out
}

func partnerRows(rows []dto.PartnerTotal) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, tableRow(r.PartnerName, r.Count, r.Revenue))
	}
	return out
}

// money formata com vírgula decimal e ponto de milhar: 1234.50 → 1.234,50.
func money(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	neg := false
	if len(intPart) > 0 && intPart[0] == '-' {
		neg = true
		intPart = intPart[1:]
	}

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, intPart[i])
	}

	out := string(buf) + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
