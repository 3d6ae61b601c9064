package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/reporting"
)

// ReportHandler rotas de relatórios de vendas.
type ReportHandler struct {
	uc   *reporting.UseCase
	resp *Responder
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *reporting.UseCase, resp *Responder) *ReportHandler {
	return &ReportHandler{uc: uc, resp: resp}
}

// Daily GET /api/reports/daily?date=YYYY-MM-DD (admin). Sem date, hoje.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return h.resp.Fail(c, fiber.StatusBadRequest, "date deve estar no formato YYYY-MM-DD")
		}
		date = parsed
	}

	out, err := h.uc.Daily(c.UserContext(), date)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Monthly GET /api/reports/monthly?month=&year= (admin). Sem parâmetros, o
// mês corrente.
func (h *ReportHandler) Monthly(c *fiber.Ctx) error {
	month, year := monthYearQuery(c)
	out, err := h.uc.Monthly(c.UserContext(), month, year)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// MonthlyPDF GET /api/reports/monthly/pdf?month=&year= (admin) — devolve o
// relatório mensal renderizado em PDF.
func (h *ReportHandler) MonthlyPDF(c *fiber.Ctx) error {
	month, year := monthYearQuery(c)
	pdf, err := h.uc.MonthlyPDF(c.UserContext(), month, year)
	if err != nil {
		return h.resp.Err(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="relatorio-%04d-%02d.pdf"`, year, month))
	return c.Send(pdf)
}

// Yearly GET /api/reports/yearly?year= (admin). Sem year, o ano corrente.
func (h *ReportHandler) Yearly(c *fiber.Ctx) error {
	year := c.QueryInt("year", time.Now().UTC().Year())
	out, err := h.uc.Yearly(c.UserContext(), year)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Partner GET /api/reports/partner/:partnerId — admin consulta qualquer
// parceiro; parceiro só a si mesmo (checado no use case).
func (h *ReportHandler) Partner(c *fiber.Ctx) error {
	partnerID, err := uuid.Parse(c.Params("partnerId"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "partnerId inválido")
	}

	out, err := h.uc.Partner(c.UserContext(), GetUserID(c), GetRole(c), partnerID)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

func monthYearQuery(c *fiber.Ctx) (int, int) {
	now := time.Now().UTC()
	return c.QueryInt("month", int(now.Month())), c.QueryInt("year", now.Year())
}
