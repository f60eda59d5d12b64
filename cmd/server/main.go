// Package main implements the entry point for the places API server,
// which stores user-owned points of interest with image uploads and
// address geocoding.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/placeshare/places-api/internal/config"
	"github.com/placeshare/places-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logInstance, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	logInstance.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	startupCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	app, err := buildApplication(startupCtx, cfg, logInstance)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.shutdown(context.Background())

	return app.serve(app.setupRouter())
}
