package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/artem13815/agentchat/pkg/app"
	"github.com/artem13815/agentchat/pkg/config"
	"github.com/artem13815/agentchat/pkg/launcher"
	"github.com/artem13815/agentchat/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, logFile, err := logger.NewFile(cfg.LogDir, "launcher", time.Now())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := func(ctx context.Context) error {
		return app.Serve(ctx, app.NewBackend(cfg, appLog), cfg.Addr())
	}
	frontend := func(ctx context.Context) error {
		appLog.Info("open the chat form", "url", "http://"+cfg.UIAddr())
		return app.Serve(ctx, app.NewFrontend(cfg, appLog), cfg.UIAddr())
	}

	if err := launcher.New(backend, frontend, cfg.HealthURL(), appLog).Run(ctx); err != nil {
		appLog.Error("application failed", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}
