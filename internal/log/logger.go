// Package log provides structured logging for the linegather CLI.
package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/jaredmtdev/linegather/internal/config"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// RunIDKey carries the id of one CLI invocation.
const RunIDKey ContextKey = "run_id"

// Logger wraps slog.Logger with convenience methods.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates a Logger writing to w based on configuration.
func NewLogger(w io.Writer, cfg config.AppConfig) *Logger {
	return NewLoggerWithFormat(w, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithFormat creates a Logger with an explicit format and level.
func NewLoggerWithFormat(w io.Writer, format config.LogFormat, level string) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = newTerminalHandler(w, opts)
	}
	return &Logger{logger: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Slog returns the underlying slog.Logger.
func (l *Logger) Slog() *slog.Logger {
	return l.logger
}

// With returns a new Logger with additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...)}
}

// WithContext returns a logger tagged with the run id found in ctx, if any.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if id := RunID(ctx); id != "" {
		return l.With(string(RunIDKey), id)
	}
	return l
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

// NewRunID returns a fresh random run id.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID adds a run id to the context.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RunIDKey, id)
}

// RunID extracts the run id from context.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(RunIDKey).(string); ok {
		return id
	}
	return ""
}
