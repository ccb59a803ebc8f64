package http

import (
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	"github.com/artem13815/agentchat/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, health *handlers.HealthHandler, chat *handlers.ChatHandler) {
	// Health and readiness endpoints for probes and the launcher
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	app.Post("/chat", chat.Chat)

	app.Get("/swagger/*", swagger.HandlerDefault)
}
