package reporting

import "github.com/credsim/bandeiras-api/internal/application/dto"

// PDFGenerator renderiza o relatório mensal em PDF.
type PDFGenerator interface {
	MonthlyReportPDF(report *dto.MonthlyReportResponse) ([]byte, error)
}
