// Package logging provides structured logging configuration using log/slog.
//
// Import batches carry their batch ID in the context so that every log entry
// written while a file is processed can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type batchIDKey struct{}

// Setup configures the global slog logger based on level and format.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func Setup(level, format string) {
	SetupWriter(os.Stderr, level, format)
}

// SetupWriter is Setup with an explicit destination.
func SetupWriter(w io.Writer, level, format string) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithBatchID stores an import batch ID in ctx.
func WithBatchID(ctx context.Context, batchID string) context.Context {
	return context.WithValue(ctx, batchIDKey{}, batchID)
}

// BatchID returns the batch ID stored in ctx, if any.
func BatchID(ctx context.Context) string {
	id, _ := ctx.Value(batchIDKey{}).(string)
	return id
}

// FromContext returns the default logger, with batch_id attached when ctx
// carries one.
func FromContext(ctx context.Context) *slog.Logger {
	logger := slog.Default()

	if id := BatchID(ctx); id != "" {
		logger = logger.With("batch_id", id)
	}

	return logger
}

// WithFields returns a logger with additional structured fields.
//
// Usage:
//
//	fileLogger := logging.WithFields(ctx, "file", path, "entity", "phone")
//	fileLogger.Info("import started")
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
