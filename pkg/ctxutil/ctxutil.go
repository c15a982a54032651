package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey ctxKey = "run_id"
)

// WithRunID stores the ID of the current command run in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// NewRun stores a fresh run ID in the context and returns it.
func NewRun(ctx context.Context) (context.Context, uuid.UUID) {
	id := uuid.New()
	return WithRunID(ctx, id), id
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// Logger returns base annotated with the run ID of ctx, or base itself when
// the context carries none.
func Logger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if id, ok := RunIDFromCtx(ctx); ok {
		return base.With(slog.String("run_id", id.String()))
	}
	return base
}
