package log

import (
	"context"
	"log/slog"
	"net/http"
)

// ContextKey type for context keys
type ContextKey string

const (
	// LoggerContextKey is the context key for the logger
	LoggerContextKey ContextKey = "logger"
)

// Middleware creates HTTP middleware that adds a logger to the request context
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), LoggerContextKey, logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext extracts a logger from the request context
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(LoggerContextKey).(*Logger); ok {
		return logger
	}
	// Return default logger if not found
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{logger: logger}
}

// LogExportServed logs a completed CSV or spreadsheet export
func (sl *StructuredLogger) LogExportServed(ctx context.Context, window, filename string, rows int) {
	fields := NewFields().
		WithWindow(window).
		WithOperation(OpExport).
		WithComponent(ComponentAnalytics).
		ToSlice()

	fields = append(fields, FieldFilename, filename, FieldRowCount, rows)

	sl.logger.InfoContext(ctx, "Export served", fields...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}
