package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/credsim/bandeiras-api/internal/application/enrollment"
)

// PublicHandler rotas sem autenticação.
type PublicHandler struct {
	uc   *enrollment.UseCase
	resp *Responder
}

// NewPublicHandler constrói o handler.
func NewPublicHandler(uc *enrollment.UseCase, resp *Responder) *PublicHandler {
	return &PublicHandler{uc: uc, resp: resp}
}

// CheckStatus GET /api/public/check-status?protocol=|cnpj= — consulta pública
// do andamento do credenciamento, por protocolo ou CNPJ (exatamente um).
func (h *PublicHandler) CheckStatus(c *fiber.Ctx) error {
	protocol := c.Query("protocol")
	cnpj := c.Query("cnpj")
	if protocol == "" && cnpj == "" {
		return h.resp.Fail(c, fiber.StatusBadRequest, "informe protocol ou cnpj")
	}

	out, err := h.uc.CheckStatus(c.UserContext(), protocol, cnpj)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}
