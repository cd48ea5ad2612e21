// Package main implements the entry point for the servicehub API server,
// which serves the service marketplace: listings, reviews, user profiles and
// the cookie credential that gates per-user review routes.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("servicehub-api: %v", err)
	}
}

// run loads configuration, connects the store, and serves HTTP until a
// shutdown signal arrives or ctx is canceled.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Any("allowed_origins", cfg.Server.AllowedOrigins))

	db, err := openDatabase(ctx, cfg.Database, l)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, l, db)
	if err != nil {
		app.cleanup()
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
