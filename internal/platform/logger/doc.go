// Package logger builds the JSON slog logger used across boardd and
// carries request-scoped loggers through context.
package logger
