// handlers/play_routes.go
package handlers

import (
	"errors"
	"fmt"

	"quiz-portal-system/middleware"
	"quiz-portal-system/services"
	"quiz-portal-system/utils"

	"github.com/gofiber/fiber/v2"
)

// seeOther is the JSON equivalent of a flash+redirect page: the client is
// expected to navigate to the given location and show the notice.
func seeOther(c *fiber.Ctx, redirect, notice string) error {
	return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
		"redirect": redirect,
		"notice":   notice,
	})
}

func levelPath(gameCode, level string, playID uint) string {
	return fmt.Sprintf("/game/%s/%s?play_id=%d", gameCode, level, playID)
}

func SetupPlayRoutes(app *fiber.App, authService *services.AuthService, playService *services.PlayService, scoreService *services.ScoreService) {
	secured := app.Group("/", middleware.SessionAuthMiddleware(authService))

	startPlay := func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)
		code := c.Params("code")

		play, err := playService.StartPlay(userID, code)
		if errors.Is(err, services.ErrGameNotFound) {
			return seeOther(c, "/dashboard", "Game not found")
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to start play",
				"cause": err.Error(),
			})
		}

		return c.Status(fiber.StatusSeeOther).JSON(fiber.Map{
			"play_id":  play.ID,
			"redirect": levelPath(code, playService.Config.First(), play.ID),
		})
	}
	secured.Get("/game/:code/start", startPlay)
	secured.Post("/game/:code/start", startPlay)

	secured.Get("/game/:code/:level", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)
		code := c.Params("code")
		level := c.Params("level")

		playID := c.QueryInt("play_id")
		if playID <= 0 {
			return seeOther(c, "/dashboard", "Start the game properly.")
		}

		res, err := playService.EnterLevel(uint(playID), userID, code, level)
		switch {
		case errors.Is(err, services.ErrGameNotFound):
			return seeOther(c, "/dashboard", "Game not found")
		case errors.Is(err, services.ErrUnknownLevel):
			return seeOther(c, "/dashboard", "Invalid level")
		case errors.Is(err, services.ErrPlayNotFound), errors.Is(err, services.ErrForbidden):
			return seeOther(c, "/dashboard", "Invalid play session")
		case errors.Is(err, services.ErrPlayNotActive):
			return seeOther(c, "/dashboard", "Play already finished")
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to enter level",
				"cause": err.Error(),
			})
		}

		if res.BlockingLevel != "" {
			return seeOther(c, levelPath(code, res.BlockingLevel, uint(playID)), "Finish previous level first.")
		}
		return c.JSON(res.View)
	})

	secured.Post("/submit/:code/:level", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)
		code := c.Params("code")
		level := c.Params("level")

		type Req struct {
			PlayID          uint `json:"play_id" validate:"required,min=1"`
			Score           int  `json:"score" validate:"min=0"`
			DurationSeconds int  `json:"duration_seconds" validate:"min=0"`
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

		step, err := scoreService.SubmitLevel(req.PlayID, userID, code, level, req.Score, req.DurationSeconds)
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrGameNotFound), errors.Is(err, services.ErrPlayNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "play does not belong to caller"})
		case errors.Is(err, services.ErrPlayNotActive), errors.Is(err, services.ErrLevelLocked):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		case err != nil:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to record submission",
				"cause": err.Error(),
			})
		}

		if step.Finished {
			return seeOther(c, fmt.Sprintf("/result/%d", step.PlayID), "Play completed!")
		}
		return seeOther(c, levelPath(code, step.NextLevel, step.PlayID), "Level recorded.")
	})

	secured.Get("/result/:play_id", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(uint)
		playID, err := c.ParamsInt("play_id")
		if err != nil || playID <= 0 {
			return seeOther(c, "/dashboard", "Result not found")
		}

		view, err := playService.Result(uint(playID), userID)
		if errors.Is(err, services.ErrPlayNotFound) {
			return seeOther(c, "/dashboard", "Result not found")
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load result",
				"cause": err.Error(),
			})
		}
		return c.JSON(view)
	})
}
