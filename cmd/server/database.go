package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/board-api/internal/config"
	"github.com/phrazzld/board-api/internal/platform/sqlstore"
)

// setupAppDatabase connects to the configured database and configures the
// connection pool. It fails if the database cannot be reached.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sqlstore.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	db, err := sqlstore.Open(ctx, cfg.Database.URL, sqlstore.PoolConfig{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("database connection established", slog.String("dialect", string(db.Dialect)))
	return db, nil
}
