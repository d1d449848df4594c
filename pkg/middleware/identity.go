package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CallerHeader carries the already-authenticated caller identity.
// Upstream auth (gateway, reverse proxy) is responsible for validating it;
// identity never appears in request URLs.
const CallerHeader = "X-Caller-Identity"

// CallerKey is the fiber locals key holding the caller identity.
const CallerKey = "caller"

func CallerIdentity(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := strings.TrimSpace(c.Get(CallerHeader))
		if caller == "" {
			logger.Warn("Missing caller identity header",
				zap.String("path", c.Path()),
			)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Caller identity required",
			})
		}

		c.Locals(CallerKey, caller)

		return c.Next()
	}
}
