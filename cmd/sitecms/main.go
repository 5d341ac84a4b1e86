package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/manishadtanii/varalobackendv.0/internal/app"
	"github.com/manishadtanii/varalobackendv.0/internal/config"
	"github.com/manishadtanii/varalobackendv.0/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
