package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tarjeta/internal/config"
)

// Open builds the store selected by cfg.StoreDriver. The returned close
// function releases any database connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverCSV:
		logger.Info("Using CSV working set",
			zap.String("primary", cfg.PrimaryPath),
			zap.String("seed", cfg.SeedPath),
		)
		return NewCSVStore(cfg.PrimaryPath, cfg.SeedPath, logger), func() error { return nil }, nil

	case config.DriverPostgres:
		db, err := Connect(ctx, cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		if err := Migrate(db, cfg.MigrationsDir, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("Using PostgreSQL working set", zap.String("set", cfg.SetName))
		return NewPostgresStore(db, cfg.SetName, cfg.SeedPath, logger), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
