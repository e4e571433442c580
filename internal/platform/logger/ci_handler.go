package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// ciEnvVars maps CI provider variables to the attribute names they are logged under.
var ciEnvVars = map[string]string{
	"GITHUB_RUN_ID":     "ci_run_id",
	"GITHUB_SHA":        "ci_commit",
	"GITHUB_REF_NAME":   "ci_ref",
	"GITHUB_WORKFLOW":   "ci_workflow",
	"GITHUB_REPOSITORY": "ci_repository",
}

// CIHandler is a slog.Handler that adds CI run metadata to every record so
// logs from parallel pipeline jobs can be told apart.
type CIHandler struct {
	handler slog.Handler
}

// NewCIHandler creates a JSON handler writing to out that carries the
// metadata of the current CI run.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	var handler slog.Handler = slog.NewJSONHandler(out, opts)
	if attrs := ciMetadata(); len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}
	return &CIHandler{handler: handler}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{handler: h.handler.WithGroup(name)}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	return h.handler.Handle(ctx, record)
}

func ciMetadata() []slog.Attr {
	var attrs []slog.Attr
	for env, name := range ciEnvVars {
		if v := os.Getenv(env); v != "" {
			attrs = append(attrs, slog.String(name, v))
		}
	}
	return attrs
}

func isInCIEnvironment() bool {
	return os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != ""
}
