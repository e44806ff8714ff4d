package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/neurolearn-api/database"
)

// HandleCheckHealth reports liveness plus database reachability
func HandleCheckHealth(store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.HealthCheck(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"db":     err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
