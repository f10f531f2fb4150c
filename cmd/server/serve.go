package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/board-api/internal/platform/sqlstore"
	"github.com/phrazzld/board-api/internal/redact"
	"github.com/spf13/cobra"
)

func newServeCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load(os.Stdout)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			db, err := setupAppDatabase(ctx, cfg, logger)
			if err != nil {
				logger.Error("database unavailable, not starting server", slog.String("error", redact.Error(err)))
				return err
			}

			if cfg.Database.AutoMigrate {
				if err := migrateUp(ctx, db, logger); err != nil {
					_ = db.Close()
					return err
				}
			}

			app, err := newApplication(ctx, cfg, logger, db)
			if err != nil {
				_ = db.Close()
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			return app.Run(ctx)
		},
	}
}

// migrateUp applies pending migrations before the server starts.
func migrateUp(ctx context.Context, db *sqlstore.DB, logger *slog.Logger) error {
	return runMigrations(ctx, db, logger, "up", io.Discard)
}
