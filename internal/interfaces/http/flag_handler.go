package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/catalog"
	"github.com/credsim/bandeiras-api/internal/application/dto"
	"github.com/credsim/bandeiras-api/internal/domain/entity"
)

// FlagHandler rotas do catálogo de bandeiras.
type FlagHandler struct {
	uc   *catalog.FlagUseCase
	resp *Responder
}

// NewFlagHandler constrói o handler.
func NewFlagHandler(uc *catalog.FlagUseCase, resp *Responder) *FlagHandler {
	return &FlagHandler{uc: uc, resp: resp}
}

// Create POST /api/flags (admin)
func (h *FlagHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFlagRequest
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

// List GET /api/flags — não-admin só vê as ativas.
func (h *FlagHandler) List(c *fiber.Ctx) error {
	onlyActive := GetRole(c) != entity.RoleAdmin
	out, err := h.uc.List(c.UserContext(), onlyActive)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Get GET /api/flags/:id
func (h *FlagHandler) Get(c *fiber.Ctx) error {
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

// Update PUT /api/flags/:id (admin)
func (h *FlagHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}

	var in dto.UpdateFlagRequest
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

// Delete DELETE /api/flags/:id (admin)
func (h *FlagHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, fiber.Map{"deleted": true})
}
