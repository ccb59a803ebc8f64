package app

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/agentchat/pkg/config"
	"github.com/artem13815/agentchat/pkg/logger"
	"github.com/artem13815/agentchat/pkg/ui"
)

// NewFrontend wires the browser form that talks to the chat API at cfg.BackendURL.
func NewFrontend(cfg config.Config, log logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               ui.Title,
		DisableStartupMessage: true,
	})
	useCommon(app)

	form := ui.NewFormHandler(ui.NewBackendClient(cfg.BackendURL), cfg.AllowedModels, log.With("component", "ui"))
	app.Get("/", form.Show)
	app.Post("/", form.Submit)
	return app
}
