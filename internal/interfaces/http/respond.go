package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/credsim/bandeiras-api/internal/domain"
)

// Envelope corpo padrão das respostas: {success, data} ou {success, error,
// details}.
type Envelope struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Error   string   `json:"error,omitempty"`
	Details []string `json:"details,omitempty"`
}

// Responder centraliza a montagem do envelope e o mapeamento de erros de
// domínio para status HTTP. Fora de development, erros internos saem
// redigidos.
type Responder struct {
	log zerolog.Logger
	dev bool
}

// NewResponder constrói o responder.
func NewResponder(log zerolog.Logger, dev bool) *Responder {
	return &Responder{log: log, dev: dev}
}

// OK resposta 200 com data.
func (r *Responder) OK(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

// Created resposta 201 com data.
func (r *Responder) Created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

// Fail resposta de erro com status e mensagem explícitos.
func (r *Responder) Fail(c *fiber.Ctx, status int, msg string, details ...string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: msg, Details: details})
}

// Validation resposta 400 com as mensagens de validação.
func (r *Responder) Validation(c *fiber.Ctx, details []string) error {
	return r.Fail(c, fiber.StatusBadRequest, "dados de entrada inválidos", details...)
}

// Err mapeia um erro de domínio para o status adequado; erros desconhecidos
// viram 500 logado.
func (r *Responder) Err(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrDuplicateIdentity),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrInvalidPlan),
		errors.Is(err, domain.ErrInvalidFlagSelection),
		errors.Is(err, domain.ErrFlagCountMismatch):
		return r.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrUnauthorized):
		return r.Fail(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return r.Fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return r.Fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrProtocolExhausted):
		r.log.Error().Err(err).Str("path", c.Path()).Msg("alocação de protocolo esgotada")
		return r.Fail(c, fiber.StatusInternalServerError, err.Error())
	}

	r.log.Error().Err(err).Str("path", c.Path()).Msg("erro interno")
	msg := "erro interno"
	if r.dev {
		msg = err.Error()
	}
	return r.Fail(c, fiber.StatusInternalServerError, msg)
}
