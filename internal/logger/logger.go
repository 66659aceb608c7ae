// Package logger provides structured logging for the driftwell backend,
// backed by log/slog with context-carried request and user identifiers.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a config string to a Level. Unknown values map to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "warn", "WARN", "warning":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field            { return Field{Key: key, Value: value} }
func Int(key string, value int) Field           { return Field{Key: key, Value: value} }
func Float64(key string, value float64) Field   { return Field{Key: key, Value: value} }
func Bool(key string, value bool) Field         { return Field{Key: key, Value: value} }
func Duration(key string, v time.Duration) Field { return Field{Key: key, Value: v} }

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Logger is the logging interface used throughout the backend.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger carrying the given fields.
	With(fields ...Field) Logger
	// WithContext returns a child logger carrying request_id/user_id
	// extracted from ctx.
	WithContext(ctx context.Context) Logger
}

// Config holds logging configuration.
type Config struct {
	Level  Level
	Format string // "json" or "text"
}

type slogLogger struct {
	logger *slog.Logger
}

// New creates a Logger backed by slog, writing to stdout.
func New(cfg Config) Logger {
	opts := &slog.HandlerOptions{Level: toSlogLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &slogLogger{logger: slog.New(handler)}
}

func toSlogLevel(l Level) slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, attrs(fields)...) }
func (l *slogLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, attrs(fields)...) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, attrs(fields)...) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, attrs(fields)...) }

func (l *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{logger: l.logger.With(attrs(fields)...)}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	fields := contextFields(ctx)
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

var defaultLogger Logger

// SetDefault installs the process-wide default logger.
func SetDefault(l Logger) { defaultLogger = l }

// Default returns the process-wide default logger, initializing a JSON
// info-level logger on first use.
func Default() Logger {
	if defaultLogger == nil {
		defaultLogger = New(Config{Level: LevelInfo, Format: "json"})
	}
	return defaultLogger
}
