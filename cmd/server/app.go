package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/board-api/internal/config"
	"github.com/phrazzld/board-api/internal/jobs"
	"github.com/phrazzld/board-api/internal/notify"
	"github.com/phrazzld/board-api/internal/platform/mailer"
	"github.com/phrazzld/board-api/internal/platform/sqlstore"
	"github.com/phrazzld/board-api/internal/redact"
	"github.com/phrazzld/board-api/internal/service"
	"github.com/phrazzld/board-api/internal/store"
	"github.com/redis/go-redis/v9"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlstore.DB
	redis  *redis.Client

	columnStore store.ColumnStore
	taskStore   store.TaskStore

	jobRunner *jobs.Runner
	notifier  notify.Notifier

	columnService service.ColumnService
	taskService   service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// The database must already be connected and migrated.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sqlstore.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.columnStore = sqlstore.NewColumnStore(db, db.Dialect, logger)
	app.taskStore = sqlstore.NewTaskStore(db, db.Dialect, logger)

	sendTimeout := time.Duration(cfg.Jobs.SendTimeoutSeconds) * time.Second
	app.jobRunner = jobs.NewRunner(jobs.RunnerConfig{
		WorkerCount: cfg.Jobs.WorkerCount,
		QueueSize:   cfg.Jobs.QueueSize,
		JobTimeout:  sendTimeout + 5*time.Second,
	}, logger)
	app.jobRunner.SetErrorHandler(func(job jobs.Job, err error) {
		logger.Error("background job failed",
			slog.String("job_id", job.ID().String()),
			slog.String("job_type", job.Type()),
			slog.String("error", redact.Error(err)))
	})

	notifier, err := app.setupNotifier(ctx, sendTimeout)
	if err != nil {
		return nil, err
	}
	app.notifier = notifier

	app.columnService, err = service.NewColumnService(app.columnStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create column service: %w", err)
	}

	repos := service.Repositories{Columns: app.columnStore, Tasks: app.taskStore}
	app.taskService, err = service.NewTaskService(
		repos,
		service.NewSQLTxRunner(db.DB, repos),
		app.notifier,
		service.TaskServiceConfig{RequireColumnMembership: cfg.Board.RequireColumnMembership},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.jobRunner.Start()

	logger.Info("application initialized",
		slog.String("dialect", string(db.Dialect)),
		slog.Int("job_workers", cfg.Jobs.WorkerCount))
	return app, nil
}

// setupNotifier picks the mail transport and optional Redis deduplication
// for completion notifications.
func (app *application) setupNotifier(ctx context.Context, sendTimeout time.Duration) (notify.Notifier, error) {
	cfg := app.config

	var sender notify.Sender
	if cfg.Mail.Enabled {
		smtp, err := mailer.New(mailer.Config{
			Host:     cfg.Mail.Host,
			Port:     cfg.Mail.Port,
			Username: cfg.Mail.Username,
			Password: cfg.Mail.Password,
			From:     cfg.Mail.SenderAddress(),
			Timeout:  sendTimeout,
		}, app.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to configure mailer: %w", err)
		}
		sender = smtp
		app.logger.Info("completion emails enabled", slog.String("smtp_host", cfg.Mail.Host))
	} else {
		sender = notify.NewLogSender(app.logger)
		app.logger.Warn("mail disabled, completion emails will only be logged")
	}

	opts := []notify.DispatcherOption{notify.WithSendTimeout(sendTimeout)}
	if cfg.Redis.URL != "" {
		client, err := notify.NewRedisClient(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.redis = client
		ttl := time.Duration(cfg.Redis.DedupeTTLMinutes) * time.Minute
		opts = append(opts, notify.WithDeduper(notify.NewRedisDeduper(client, ttl)))
		app.logger.Info("completion notification dedupe enabled", slog.Duration("ttl", ttl))
	}

	dispatcher, err := notify.NewDispatcher(sender, app.jobRunner, app.logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification dispatcher: %w", err)
	}
	return dispatcher, nil
}

// Run serves HTTP until ctx is cancelled, then shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup drains background jobs and closes connections.
func (app *application) cleanup(ctx context.Context) {
	if app.jobRunner != nil {
		if err := app.jobRunner.Stop(ctx); err != nil {
			app.logger.Warn("pending notifications were dropped", slog.String("error", err.Error()))
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", slog.String("error", err.Error()))
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
