package agnostic

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/hupe1980/agnostic/report"
	"github.com/hupe1980/agnostic/timer"
)

// Logger wraps slog.Logger with benchmark-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// WithProgram adds a program field to the logger.
func (l *Logger) WithProgram(program string, size int) *Logger {
	return &Logger{
		Logger: l.Logger.With("program", program, "size", size),
	}
}

// LogKernel logs one timed kernel event.
func (l *Logger) LogKernel(ctx context.Context, e timer.Event) {
	l.DebugContext(ctx, "kernel completed",
		"event", e.Name,
		"seconds", e.Seconds(),
	)
}

// LogVerify logs the outcome of the layout comparison.
func (l *Logger) LogVerify(ctx context.Context, maxErr float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "verification failed",
			"max_error", maxErr,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "verification passed",
			"max_error", maxErr,
		)
	}
}

// LogDump logs a validation dump upload.
func (l *Logger) LogDump(ctx context.Context, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "dump failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "dump written",
			"name", name,
			"bytes", bytes,
		)
	}
}

// LogReport logs the publication of a report.
func (l *Logger) LogReport(ctx context.Context, r *report.Report, err error) {
	if err != nil {
		l.ErrorContext(ctx, "report publish failed",
			"run", r.Run(),
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report published",
			"run", r.Run(),
			"events", len(r.Events),
		)
	}
}
