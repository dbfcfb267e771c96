package api

import (
	"github.com/gofiber/fiber/v2"

	v1 "github.com/pushpitkamboj/lyftrAI-assignment/internal/api/v1"
)

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/health/live", handler.Live)
	app.Get("/health/ready", handler.Ready)
	app.Post("/webhook", handler.Webhook)
	app.Get("/messages", handler.Messages)
	app.Get("/stats", handler.Stats)
}
