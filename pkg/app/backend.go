package app

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	_ "github.com/artem13815/agentchat/docs"

	httpapi "github.com/artem13815/agentchat/api/http"
	"github.com/artem13815/agentchat/api/http/handlers"
	"github.com/artem13815/agentchat/api/http/presenter"
	"github.com/artem13815/agentchat/pkg/agent"
	"github.com/artem13815/agentchat/pkg/chat"
	"github.com/artem13815/agentchat/pkg/config"
	"github.com/artem13815/agentchat/pkg/health"
	"github.com/artem13815/agentchat/pkg/health/checkers"
	"github.com/artem13815/agentchat/pkg/llm/groq"
	"github.com/artem13815/agentchat/pkg/logger"
	"github.com/artem13815/agentchat/pkg/search/tavily"
)

// NewBackend wires the chat API: providers, agent invoker, use case and routes.
func NewBackend(cfg config.Config, log logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Multi AI Agent API",
		DisableStartupMessage: true,
		ErrorHandler:          jsonErrors(log.With("component", "http")),
	})
	useCommon(app)

	// Groq models and Tavily search
	models := groq.NewProvider(cfg.GroqAPIKey, cfg.GroqBaseURL)
	search := tavily.New(cfg.TavilyAPIKey, cfg.TavilyURL)
	invoker := agent.NewInvoker(models, search, cfg.SearchMaxResults, cfg.AgentMaxSteps)

	chatUC := chat.NewService(invoker, cfg, log.With("component", "chat"))
	readiness := health.NewService(checkers.NewProviderChecker("groq", models))

	httpapi.Register(app, handlers.NewHealthHandler(readiness), handlers.NewChatHandler(chatUC))
	return app
}

// jsonErrors answers unhandled errors with {"detail": ...}. Routing errors
// keep their status and text; anything else, recovered panics included, is
// logged and reported as a bare 500.
func jsonErrors(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return presenter.Error(c, fe.Code, fe.Message)
		}
		log.Error("unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
		return presenter.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
}

func useCommon(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
}
