// Package logging is the structured logger used by the cache, the stores
// and both binaries. The only implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// Args are key/value pairs:
//
//	log.Warn(ctx, "persistence failed", "key", key, "op", op)
type Logger interface {
	// Debug logs verbose diagnostics (cache misses, queue drains).
	Debug(ctx context.Context, msg string, args ...any)

	Info(ctx context.Context, msg string, args ...any)

	// Warn is used for failures the caller never sees, such as a dropped write.
	Warn(ctx context.Context, msg string, args ...any)

	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l Logger) Logger {
	if l == nil {
		return Discard()
	}
	return l
}
