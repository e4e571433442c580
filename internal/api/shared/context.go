package shared

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// UserIDContextKey is the context key for the internal user ID
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDHeader lets callers propagate their own trace ID.
	TraceIDHeader = "X-Trace-ID"
)

// validTraceID accepts caller-supplied IDs that are safe to echo and log.
var validTraceID = regexp.MustCompile(`^[A-Za-z0-9-]{8,64}$`)

// SetTraceID adds a trace ID to the context. A well-formed incoming ID is
// reused so logs correlate across services; otherwise a new one is generated.
func SetTraceID(ctx context.Context, incoming string) context.Context {
	traceID := incoming
	if !validTraceID.MatchString(traceID) {
		traceID = NewTraceID()
	}
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// NewTraceID returns a random 32 character hex trace ID.
func NewTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
