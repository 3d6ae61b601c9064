package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/catalog"
	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// PlanHandler rotas do catálogo de planos.
type PlanHandler struct {
	uc   *catalog.PlanUseCase
	resp *Responder
}

// NewPlanHandler constrói o handler.
func NewPlanHandler(uc *catalog.PlanUseCase, resp *Responder) *PlanHandler {
	return &PlanHandler{uc: uc, resp: resp}
}

// Create POST /api/plans (admin)
func (h *PlanHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.Created(c, out)
}

// List GET /api/plans — não-admin só vê os ativos.
func (h *PlanHandler) List(c *fiber.Ctx) error {
	onlyActive := GetRole(c) != entity.RoleAdmin
	out, err := h.uc.List(c.UserContext(), onlyActive)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Get GET /api/plans/:id
func (h *PlanHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Update PUT /api/plans/:id (admin)
func (h *PlanHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}

	var in dto.UpdatePlanRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Delete DELETE /api/plans/:id (admin)
func (h *PlanHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, fiber.Map{"deleted": true})
}
