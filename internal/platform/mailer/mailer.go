// Package mailer delivers notification messages over SMTP using go-mail.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/board-api/internal/notify"
	"github.com/phrazzld/board-api/internal/platform/logger"
	"github.com/wneessen/go-mail"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPSender implements notify.Sender over SMTP with PLAIN auth.
type SMTPSender struct {
	cfg    Config
	logger *slog.Logger
}

var _ notify.Sender = (*SMTPSender)(nil)

// New validates cfg and returns an SMTPSender. From defaults to Username.
func New(cfg Config, logger *slog.Logger) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, errors.New("mailer: host is required")
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.From == "" {
		return nil, errors.New("mailer: sender address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SMTPSender{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "smtp_sender")),
	}, nil
}

// Send implements notify.Sender.
func (s *SMTPSender) Send(ctx context.Context, msg notify.Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("mailer: failed to create SMTP client: %w", err)
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer: failed to deliver message: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("message delivered",
		slog.String("host", s.cfg.Host),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

func (s *SMTPSender) buildMessage(msg notify.Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("mailer: invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("mailer: invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
	}

	if s.cfg.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}
