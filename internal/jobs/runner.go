package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// RunnerConfig holds configuration for the job runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int

	// JobTimeout bounds a single job execution
	JobTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 2,
		QueueSize:   100,
		JobTimeout:  30 * time.Second,
	}
}

// Runner owns a queue and the worker pool that drains it.
type Runner struct {
	queue  *Queue
	pool   *WorkerPool
	logger *slog.Logger
}

// NewRunner creates a Runner. Call Start before submitting work.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "job_runner")

	queue := NewQueue(config.QueueSize, logger)
	pool := NewWorkerPool(queue, WorkerPoolConfig{
		WorkerCount: config.WorkerCount,
		JobTimeout:  config.JobTimeout,
	}, logger)

	return &Runner{
		queue:  queue,
		pool:   pool,
		logger: logger,
	}
}

// SetErrorHandler sets a callback invoked for every failed job.
func (r *Runner) SetErrorHandler(handler func(job Job, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Start launches the workers.
func (r *Runner) Start() {
	r.pool.Start()
}

// Submit hands job to the queue without blocking.
func (r *Runner) Submit(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.queue.Enqueue(job); err != nil {
		return fmt.Errorf("failed to submit job: %w", err)
	}
	return nil
}

// Stop closes the queue and waits for queued jobs to finish. If ctx ends
// first, running jobs are cancelled and the remaining queue is dropped.
func (r *Runner) Stop(ctx context.Context) error {
	r.queue.Close()
	err := r.pool.Wait(ctx)
	if err != nil {
		r.logger.Warn("job runner stopped before draining", "error", err)
		return err
	}
	r.logger.Info("job runner stopped")
	return nil
}
