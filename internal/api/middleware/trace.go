// Package middleware holds HTTP middleware shared by the board routes.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/board-api/internal/api/shared"
	"github.com/phrazzld/board-api/internal/platform/logger"
)

// maxTraceIDLength bounds client-supplied trace IDs.
const maxTraceIDLength = 64

// TraceMiddleware adds a trace ID to the request context and attaches a
// logger tagged with it. A client-supplied X-Trace-ID is reused when it is
// short enough; the ID is echoed back in the response header.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if incoming := r.Header.Get(shared.TraceIDHeader); incoming != "" && len(incoming) <= maxTraceIDLength {
				ctx = shared.WithTraceID(ctx, incoming)
			} else {
				ctx = shared.SetTraceID(ctx)
			}
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
