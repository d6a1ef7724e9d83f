package middleware

import (
	"log"
	"strings"

	"quiz-portal-system/services"

	"github.com/gofiber/fiber/v2"
)

// SessionAuthMiddleware resolves the caller's session token into a user id
// and attaches it to the request context. Accepts X-Session-Token or a
// Bearer Authorization header.
func SessionAuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("X-Session-Token")
		if token == "" {
			header := c.Get("Authorization")
			if after, ok := strings.CutPrefix(header, "Bearer "); ok {
				token = after
			}
		}
		if token == "" {
			log.Printf("🚫 [SESSION] missing token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing session token",
			})
		}

		userID, err := auth.ResolveSession(token)
		if err != nil {
			log.Printf("🚫 [SESSION] invalid token for %s", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session",
			})
		}

		c.Locals("user_id", userID)
		c.Locals("session_token", token)

		return c.Next()
	}
}
