// Package logging defines a minimal structured-logging interface used across
// the backend. Implementations can wrap slog, zap, zerolog, etc.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "otp issued", "email", email)
type Logger interface {
	// Debug logs a verbose diagnostic message.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// NewNoop returns a Logger that discards everything. Handy in tests.
func NewNoop() Logger {
	return &noopLogger{}
}

type noopLogger struct{}

func (n *noopLogger) Debug(context.Context, string, ...any) {}
func (n *noopLogger) Info(context.Context, string, ...any)  {}
func (n *noopLogger) Warn(context.Context, string, ...any)  {}
func (n *noopLogger) Error(context.Context, string, ...any) {}
func (n *noopLogger) With(...any) Logger                    { return n }
