package orchestrator

import (
	"context"
	"log/slog"
)

type logCtxKey struct{}

// withLogger attaches the per-invocation logger to ctx.
func withLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, log)
}

// loggerFrom returns the invocation logger carried by ctx, or fallback.
func loggerFrom(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return fallback
}
