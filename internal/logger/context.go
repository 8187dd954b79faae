package logger

import (
	"context"

	"go.uber.org/zap"
)

type ctxKey struct{}

// ContextWithLogger stores a logger in the context.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext extracts a logger from the context.
// Returns zap.NewNop() if no logger is found.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}

// With derives a child of base carrying fields and stores it in ctx.
// A nil base falls back to the logger already in ctx.
func With(ctx context.Context, base *zap.Logger, fields ...zap.Field) (context.Context, *zap.Logger) {
	if base == nil {
		base = FromContext(ctx)
	}
	l := base.With(fields...)
	return ContextWithLogger(ctx, l), l
}
