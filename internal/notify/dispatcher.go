package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/board-api/internal/domain"
	"github.com/phrazzld/board-api/internal/jobs"
	"github.com/phrazzld/board-api/internal/platform/logger"
)

const jobTypeCompletionEmail = "completion_email"

// JobSubmitter accepts background jobs without blocking.
type JobSubmitter interface {
	Submit(ctx context.Context, job jobs.Job) error
}

// Dispatcher is the Notifier used by the service. It queues one send job
// per completed task.
type Dispatcher struct {
	sender      Sender
	jobs        JobSubmitter
	deduper     Deduper
	sendTimeout time.Duration
	logger      *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDeduper suppresses repeat notifications for the same task.
func WithDeduper(d Deduper) DispatcherOption {
	return func(disp *Dispatcher) {
		disp.deduper = d
	}
}

// WithSendTimeout bounds each delivery attempt.
func WithSendTimeout(timeout time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		disp.sendTimeout = timeout
	}
}

// NewDispatcher creates a Dispatcher delivering through sender on the
// workers behind submitter.
func NewDispatcher(sender Sender, submitter JobSubmitter, logger *slog.Logger, opts ...DispatcherOption) (*Dispatcher, error) {
	if sender == nil {
		return nil, domain.NewValidationError("sender", "cannot be nil", nil)
	}
	if submitter == nil {
		return nil, domain.NewValidationError("jobs", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{
		sender:      sender,
		jobs:        submitter,
		sendTimeout: 30 * time.Second,
		logger:      logger.With(slog.String("component", "notify_dispatcher")),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

var _ Notifier = (*Dispatcher)(nil)

// NotifyTaskCompleted implements Notifier. It returns once the send job is
// queued; delivery errors surface only in the log.
func (d *Dispatcher) NotifyTaskCompleted(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, d.logger).With(slog.String("task_id", task.ID.String()))
	key := task.ID.String()

	if d.deduper != nil {
		first, err := d.deduper.Add(ctx, key)
		switch {
		case err != nil:
			// Fail open.
			log.Warn("notification dedupe check failed, sending anyway", slog.String("error", err.Error()))
		case !first:
			log.Debug("completion notification already sent, skipping")
			return nil
		}
	}

	msg := CompletionMessage(task)
	job := jobs.NewFuncJob(jobTypeCompletionEmail, func(jobCtx context.Context) error {
		return d.deliver(jobCtx, task, msg, key)
	})

	if err := d.jobs.Submit(ctx, job); err != nil {
		d.forget(ctx, key, log)
		return &NotificationError{TaskID: task.ID, Recipient: msg.To, Stage: "enqueue", Err: err}
	}

	log.Debug("completion notification queued", slog.String("job_id", job.ID().String()))
	return nil
}

func (d *Dispatcher) deliver(ctx context.Context, task *domain.Task, msg Message, key string) error {
	log := d.logger.With(slog.String("task_id", task.ID.String()))

	sendCtx := ctx
	if d.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, d.sendTimeout)
		defer cancel()
	}

	if err := d.sender.Send(sendCtx, msg); err != nil {
		nerr := &NotificationError{TaskID: task.ID, Recipient: msg.To, Stage: "send", Err: err}
		log.Error("failed to send completion notification",
			slog.String("error", nerr.Error()),
			slog.Bool("timeout", errors.Is(err, context.DeadlineExceeded)))
		d.forget(context.WithoutCancel(ctx), key, log)
		return nerr
	}

	log.Info("completion notification sent")
	return nil
}

func (d *Dispatcher) forget(ctx context.Context, key string, log *slog.Logger) {
	if d.deduper == nil {
		return
	}
	if err := d.deduper.Remove(ctx, key); err != nil {
		log.Warn("failed to clear notification dedupe key", slog.String("error", err.Error()))
	}
}
