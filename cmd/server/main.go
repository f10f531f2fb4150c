// Package main implements boardd, the task board API server, together
// with its migration and board inspection commands.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/phrazzld/board-api/internal/config"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the boardd command tree.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "boardd",
		Short:         "Task board API server",
		Long:          "boardd serves the task board HTTP API and manages its database schema.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config.yaml)")

	load := func(logOutput io.Writer) (*config.Config, *slog.Logger, error) {
		return initializeApp(configPath, logOutput)
	}

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newBoardCmd(load),
	)
	return root
}

// configLoader loads configuration and sets up logging to the given writer.
type configLoader func(logOutput io.Writer) (*config.Config, *slog.Logger, error)

// initializeApp loads configuration and sets up structured logging.
func initializeApp(configPath string, logOutput io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.SetupWithWriter(cfg.Server, logOutput)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Debug("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("mail_enabled", cfg.Mail.Enabled),
		slog.Bool("redis_enabled", cfg.Redis.URL != ""))

	return cfg, log, nil
}
