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
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog, logFile, err := logger.NewFile(cfg.LogDir, "ui", time.Now())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLog.Info("chat form listening", "addr", cfg.UIAddr(), "backend", cfg.BackendURL)
	if err := app.Serve(ctx, app.NewFrontend(cfg, appLog), cfg.UIAddr()); err != nil {
		appLog.Error("chat form stopped", "error", err)
		logFile.Close()
		log.Fatalf("chat form stopped: %v", err)
	}
}
