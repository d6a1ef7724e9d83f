// handlers/auth_routes.go
package handlers

import (
	"errors"

	"quiz-portal-system/middleware"
	"quiz-portal-system/services"
	"quiz-portal-system/utils"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	app.Post("/register", func(c *fiber.Ctx) error {
		type Req struct {
			Username string `json:"username" validate:"required,min=3,max=32"`
			Password string `json:"password" validate:"required,min=6,max=128"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if err := utils.ValidateStruct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		userID, err := authService.Register(req.Username, req.Password)
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "username already taken"})
		}
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create account",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":       userID,
			"username": req.Username,
			"notice":   "Account created! Please login.",
		})
	})

	app.Post("/login", func(c *fiber.Ctx) error {
		type Req struct {
			Username string `json:"username" validate:"required"`
			Password string `json:"password" validate:"required"`
		}
		var req Req
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}
		if err := utils.ValidateStruct(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}

		userID, err := authService.Authenticate(req.Username, req.Password)
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "login failed",
				"cause": err.Error(),
			})
		}

		sess, err := authService.IssueSession(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to create session",
				"cause": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"token":      sess.Token,
			"user_id":    sess.UserID,
			"expires_at": sess.ExpiresAt,
		})
	})

	secured := app.Group("/", middleware.SessionAuthMiddleware(authService))

	secured.Post("/logout", func(c *fiber.Ctx) error {
		token := c.Locals("session_token").(string)
		if err := authService.RevokeSession(token); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "logout failed",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"notice": "Logged out."})
	})
}
