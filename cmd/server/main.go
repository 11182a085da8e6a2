package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alimgiray/evidence/internal/server"
	"github.com/alimgiray/evidence/pkg/config"
	"github.com/alimgiray/evidence/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	log := logger.Configure(config.AppConfig.Log.Level, logger.FormatJSON, os.Stdout)
	if !config.AppConfig.EnvFileLoaded {
		log.Debug("No .env file found, using environment variables")
	}

	// Wait for interrupt signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, config.AppConfig, log); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
