// Package logger provides structured logging for podgrid on top of log/slog.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
)

// Options configures a logger instance.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Unknown values fall
	// back to info.
	Level string

	// JSON selects the JSON handler instead of the text handler.
	JSON bool

	// Output is the destination writer. Defaults to stderr.
	Output io.Writer
}

// Logger wraps slog.Logger.
type Logger struct {
	*slog.Logger
}

var defaultLogger atomic.Value // *Logger

func init() {
	defaultLogger.Store(New(Options{}))
}

// New creates a logger from the given options.
func New(opts Options) *Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{Level: parseLevel(opts.Level)}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(output, handlerOpts)
	} else {
		handler = slog.NewTextHandler(output, handlerOpts)
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewWithFile creates a logger writing to the given file path, or stderr when
// the path is empty. The returned close function is a no-op for stderr.
func NewWithFile(opts Options, path string) (*Logger, func() error, error) {
	if path == "" {
		return New(opts), func() error { return nil }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file %s: %w", path, err)
	}

	opts.Output = f
	return New(opts), f.Close, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger with the given attributes attached.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	defaultLogger.Store(l)
}

// Default returns the package-level default logger.
func Default() *Logger {
	l, _ := defaultLogger.Load().(*Logger)
	return l
}

// Debug logs a debug message using the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs an info message using the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs a warning message using the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs an error message using the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}
