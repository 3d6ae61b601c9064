package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/credsim/bandeiras-api/internal/infrastructure/cache"
)

// RateLimit limita requisições por IP numa janela fixa compartilhada no
// Redis. Redis indisponível deixa passar (fail-open) com log.
func RateLimit(limiter *cache.Limiter, log zerolog.Logger, name string, max int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.IP())

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		allowed, remaining, err := limiter.Allow(ctx, key, max, window)
		if err != nil {
			log.Warn().Err(err).Str("limiter", name).Msg("rate limiter indisponível, liberando")
			return c.Next()
		}
		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(Envelope{
				Success: false,
				Error:   "muitas requisições, tente novamente mais tarde",
			})
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", max))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		return c.Next()
	}
}
