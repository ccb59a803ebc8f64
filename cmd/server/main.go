// @title         Multi AI Agent API
// @version       1.0
// @description   Chat API that forwards queries to Groq-hosted models, optionally with Tavily web search.
// @BasePath      /
// @schemes       http
// @host          localhost:8000
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/artem13815/agentchat/pkg/app"
	"github.com/artem13815/agentchat/pkg/config"
	"github.com/artem13815/agentchat/pkg/logger"
)

func main() {
	// Load configuration from env/.env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, logFile, err := logger.NewFile(cfg.LogDir, "server", time.Now())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := app.NewBackend(cfg, appLog)

	appLog.Info("HTTP server listening", "addr", cfg.Addr(), "models", cfg.AllowedModels)
	if err := app.Serve(ctx, backend, cfg.Addr()); err != nil {
		appLog.Error("server stopped", "error", err)
		logFile.Close()
		log.Fatalf("server stopped: %v", err)
	}
	appLog.Info("server shut down")
}
