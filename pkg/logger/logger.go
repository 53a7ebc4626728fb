// Package logger wraps slog with a JSON handler shared by the whole service.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog for consistent logging across the application
type Logger struct {
	*slog.Logger
}

// New creates a new logger instance at info level
func New() *Logger {
	return NewWithLevel(slog.LevelInfo)
}

// NewWithLevel creates a new logger with specified level
func NewWithLevel(level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})),
	}
}

// NewFromEnv creates a logger whose level is taken from LOG_LEVEL
// (debug, info, warn, error); unknown values fall back to info.
func NewFromEnv() *Logger {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return NewWithLevel(slog.LevelDebug)
	case "warn":
		return NewWithLevel(slog.LevelWarn)
	case "error":
		return NewWithLevel(slog.LevelError)
	default:
		return NewWithLevel(slog.LevelInfo)
	}
}

// WithField returns a logger with a pre-set field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{
		Logger: l.With(key, value),
	}
}
