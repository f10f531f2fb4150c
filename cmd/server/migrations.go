package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/phrazzld/board-api/internal/platform/sqlstore"
	"github.com/spf13/cobra"
)

func newMigrateCmd(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(direction string) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := load(os.Stderr)
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			return runMigrations(cmd.Context(), db, logger, direction, cmd.OutOrStdout())
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: run("up")},
		&cobra.Command{Use: "down", Short: "Roll back the most recent migration", RunE: run("down")},
		&cobra.Command{Use: "status", Short: "Show applied and pending migrations", RunE: run("status")},
	)
	return cmd
}

// runMigrations executes one migration command against db.
func runMigrations(ctx context.Context, db *sqlstore.DB, logger *slog.Logger, direction string, out io.Writer) error {
	migrator, err := sqlstore.NewMigrator(db.DB, db.Dialect, logger)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	switch direction {
	case "up":
		return migrator.Up(ctx)
	case "down":
		return migrator.Down(ctx)
	case "status":
		statuses, err := migrator.Status(ctx)
		if err != nil {
			return err
		}
		writeMigrationStatus(out, statuses)
		return nil
	default:
		return fmt.Errorf("unknown migration command %q", direction)
	}
}

func writeMigrationStatus(out io.Writer, statuses []sqlstore.MigrationStatus) {
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.AppendHeader(table.Row{"Version", "Migration", "Applied"})
	for _, s := range statuses {
		applied := "pending"
		if s.Applied {
			applied = "yes"
		}
		tw.AppendRow(table.Row{s.Version, s.Name, applied})
	}
	tw.Render()
}
