package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"snakeidle/internal/server/handlers"
)

func RegisterRoutes(app *fiber.App, versions *handlers.Versions) {
	// Download page
	app.Get("/", versions.Index)
	app.Get("/download/:version", versions.Download)

	// API
	api := app.Group("/api")
	api.Get("/versions", versions.List)
	api.Get("/versions/latest", versions.Latest)

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "time": time.Now()})
	})
}
