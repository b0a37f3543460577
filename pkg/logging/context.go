package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithRunID tags the context logger with a fresh render-pass id.
// An existing run id is kept.
func WithRunID(ctx context.Context) context.Context {
	if RunID(ctx) != "" {
		return ctx
	}
	id := uuid.NewString()
	ctx = context.WithValue(ctx, runIDKey, id)
	return WithField(ctx, "run_id", id)
}

// RunID extracts the render-pass id from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithFields adds structured fields to the logger in the context.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	logCtx := FromContext(ctx).With()
	for key, value := range fields {
		logCtx = addField(logCtx, key, value)
	}
	newLogger := logCtx.Logger()
	return WithLogger(ctx, &newLogger)
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	newLogger := addField(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithLocation adds a registry key to the logger.
func WithLocation(ctx context.Context, key string) context.Context {
	return WithField(ctx, "location", key)
}

// WithMarker adds a placeholder marker to the logger.
func WithMarker(ctx context.Context, marker string) context.Context {
	return WithField(ctx, "marker", marker)
}

// WithOperation adds operation context to the logger.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}

// WithError adds an error to the context logger.
func WithError(ctx context.Context, err error) context.Context {
	if err == nil {
		return ctx
	}
	return WithField(ctx, "error", err)
}

// addField adds a typed field to a logger context.
func addField(zctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return zctx.Str(key, v)
	case int:
		return zctx.Int(key, v)
	case bool:
		return zctx.Bool(key, v)
	case error:
		if key == "error" {
			return zctx.Err(v)
		}
		return zctx.Str(key, v.Error())
	default:
		return zctx.Interface(key, v)
	}
}
