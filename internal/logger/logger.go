// Package logger configures the process-wide structured logger.
package logger

import (
	"context"
	"log/slog"
	"os"
)

type ctxKey struct{}

// New builds the base logger: JSON for production, text otherwise.
// The returned logger is also installed as the slog default.
func New(production bool) *slog.Logger {
	var handler slog.Handler
	if production {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// WithCtx returns the request-scoped logger stored in ctx, or the default logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

// Inject stores a request-scoped logger in ctx.
func Inject(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}
