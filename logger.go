package dictgo

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with dictgo-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithValue adds a value field to the logger, truncated to keep log lines
// bounded for large interned strings.
func (l *Logger) WithValue(value string) *Logger {
	return &Logger{
		Logger: l.Logger.With("value", truncateValue(value)),
	}
}

// LogLeak logs a record that was still referenced at teardown.
func (l *Logger) LogLeak(value string, refcount uint32) {
	l.Warn("string not released from the dictionary",
		"value", truncateValue(value),
		"refcount", refcount,
	)
}

const maxLoggedValueLen = 256

func truncateValue(value string) string {
	if len(value) > maxLoggedValueLen {
		return value[:maxLoggedValueLen] + "..."
	}
	return value
}
