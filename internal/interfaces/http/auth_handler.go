package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/auth"
	"github.com/credsim/bandeiras-api/internal/application/dto"
)

// AuthHandler rotas de autenticação e gestão de usuários.
type AuthHandler struct {
	uc   *auth.UseCase
	resp *Responder
}

// NewAuthHandler constrói o handler.
func NewAuthHandler(uc *auth.UseCase, resp *Responder) *AuthHandler {
	return &AuthHandler{uc: uc, resp: resp}
}

// Login POST /api/auth/login (público)
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// Register POST /api/auth/register (admin)
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.Created(c, out)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// UpdateProfile PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.UpdateProfile(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// ListUsers GET /api/auth/users (admin)
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.UserContext())
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}

// UpdateUser PUT /api/auth/users/:id (admin)
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "id inválido")
	}

	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return h.resp.Fail(c, fiber.StatusBadRequest, "corpo inválido")
	}
	if details := in.Validate(); len(details) > 0 {
		return h.resp.Validation(c, details)
	}

	out, err := h.uc.UpdateUser(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return h.resp.Err(c, err)
	}
	return h.resp.OK(c, out)
}
