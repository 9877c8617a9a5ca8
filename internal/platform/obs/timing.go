package obs

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID returns a context carrying the request id used in timing logs.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// RequestID returns the request id stored in ctx, or "" when absent.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// Time starts a timer for op; call the returned func (usually deferred) with
// the operation's error pointer to log its duration and outcome.
func Time(ctx context.Context, name string, keyvals ...any) func(errp *error) {
	start := time.Now()

	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		kv := append([]any{"req_id", reqID, "op", name, "dur_ms", dur.Milliseconds()}, keyvals...)
		if errp != nil && *errp != nil {
			log.Error("operation failed", append(kv, "err", *errp)...)
			return
		}
		log.Debug("operation done", kv...)
	}
}
