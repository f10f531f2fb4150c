package notify

import (
	"context"
	"log/slog"

	"github.com/phrazzld/board-api/internal/platform/logger"
)

// LogSender writes messages to the log instead of delivering them.
// It is used when mail delivery is disabled.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger.With(slog.String("component", "log_sender"))}
}

// Send implements Sender. The body is omitted from the log.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	logger.FromContextOrDefault(ctx, s.logger).Info("mail delivery disabled, message not sent",
		slog.String("subject", msg.Subject),
		slog.Int("body_length", len(msg.Body)))
	return nil
}
