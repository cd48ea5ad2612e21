package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/servicehub-api/internal/config"
	"github.com/phrazzld/servicehub-api/internal/platform/memory"
	"github.com/phrazzld/servicehub-api/internal/platform/mongodb"
	"github.com/phrazzld/servicehub-api/internal/store"
)

// database bundles the stores of one backend with its lifecycle hooks.
type database struct {
	services store.ServiceStore
	reviews  store.ReviewStore
	users    store.UserStore
	pinger   store.Pinger
	close    func(ctx context.Context) error
}

// openDatabase connects the configured backend. For mongo it also ensures the
// indexes the stores rely on exist.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store; data is lost on exit")
		return newMemoryDatabase(memory.New()), nil

	case config.DriverMongo:
		db, err := mongodb.Connect(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			if dErr := db.Disconnect(context.Background()); dErr != nil {
				logger.Warn("failed to disconnect after index failure", "error", dErr)
			}
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		return &database{
			services: db.Services(),
			reviews:  db.Reviews(),
			users:    db.Users(),
			pinger:   db,
			close:    db.Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func newMemoryDatabase(db *memory.DB) *database {
	return &database{
		services: db.Services(),
		reviews:  db.Reviews(),
		users:    db.Users(),
		pinger:   db,
		close:    func(context.Context) error { return nil },
	}
}
