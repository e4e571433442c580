package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingodeck/internal/api/shared"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context and stores a logger
// tagged with it, so every log line written for the request carries trace_id.
// The ID is echoed in the X-Trace-ID response header.
// Apply it early in the chain so later handlers see the trace ID.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
		traceID := shared.GetTraceID(ctx)
		ctx = logger.WithTraceID(ctx, traceID)

		w.Header().Set(shared.TraceIDHeader, traceID)

		logger.FromContext(ctx).Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
