package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/credsim/bandeiras-api/internal/application/enrollment"
	"github.com/credsim/bandeiras-api/pkg/jwt"
)

// Locals keys preenchidas pelo AuthMiddleware.
const (
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware valida o Bearer Token e coloca user_id e role em c.Locals.
func AuthMiddleware(tokens *jwt.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header obrigatório")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "formato: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "token vazio")
		}

		userID, role, err := tokens.Parse(tokenString)
		if err != nil {
			return unauthorized(c, "token inválido ou expirado")
		}

		c.Locals(LocalUserID, userID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole restringe a rota aos papéis listados. Usar depois do
// AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		if !allowed[GetRole(c)] {
			return c.Status(fiber.StatusForbidden).JSON(Envelope{Success: false, Error: "acesso negado"})
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(Envelope{Success: false, Error: msg})
}

// GetUserID devolve o UserID do contexto (após o AuthMiddleware).
func GetUserID(c *fiber.Ctx) uuid.UUID {
	if v, ok := c.Locals(LocalUserID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// GetRole devolve o papel do contexto (após o AuthMiddleware).
func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalRole).(string); ok {
		return v
	}
	return ""
}

// GetActor monta o ator das operações de credenciamento.
func GetActor(c *fiber.Ctx) enrollment.Actor {
	return enrollment.Actor{ID: GetUserID(c), Role: GetRole(c)}
}
