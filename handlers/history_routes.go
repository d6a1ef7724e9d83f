// handlers/history_routes.go
package handlers

import (
	"quiz-portal-system/middleware"
	"quiz-portal-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupHistoryRoutes(app *fiber.App, authService *services.AuthService, catalogService *services.CatalogService, historyService *services.HistoryService) {
	secured := app.Group("/", middleware.SessionAuthMiddleware(authService))

	secured.Get("/dashboard", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		entries, err := catalogService.Dashboard(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load dashboard",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"games": entries})
	})

	secured.Get("/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)

		history, err := historyService.BuildHistory(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build history",
				"cause": err.Error(),
			})
		}
		return c.JSON(history)
	})
}
