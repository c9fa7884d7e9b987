package vanigo

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/vanigo/engine"
)

// Logger wraps slog.Logger with vanigo-specific context.
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

// WithPrefix adds the searched prefix field to the logger.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		Logger: l.Logger.With("prefix", prefix),
	}
}

// WithWorkers adds a worker count field to the logger.
func (l *Logger) WithWorkers(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", n),
	}
}

// LogImprovement logs a committed improvement.
func (l *Logger) LogImprovement(ctx context.Context, candidate any) {
	l.InfoContext(ctx, "new best candidate",
		"candidate", candidate,
	)
}

// LogAccepted logs the accepted candidate that ended the search.
func (l *Logger) LogAccepted(ctx context.Context, candidate any, elapsed time.Duration) {
	l.InfoContext(ctx, "search accepted",
		"candidate", candidate,
		"elapsed", elapsed,
	)
}

// LogThroughput logs a throughput sample.
func (l *Logger) LogThroughput(ctx context.Context, perSec float64) {
	l.DebugContext(ctx, "throughput sampled",
		"candidates_per_sec", perSec,
	)
}

// LogRun logs the outcome of a run.
func (l *Logger) LogRun(ctx context.Context, stats engine.Stats, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"generated", stats.Generated,
			"committed", stats.Committed,
			"elapsed", stats.Elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "search completed",
			"generated", stats.Generated,
			"forwarded", stats.Forwarded,
			"committed", stats.Committed,
			"stale", stats.Stale,
			"accepted", stats.Accepted,
			"elapsed", stats.Elapsed,
		)
	}
}

// engineLogger adapts Logger to the engine's printf-style interface.
type engineLogger struct {
	l *Logger
}

func (e engineLogger) Infof(format string, args ...any) {
	e.l.Info(fmt.Sprintf(format, args...))
}

func (e engineLogger) Errorf(format string, args ...any) {
	e.l.Error(fmt.Sprintf(format, args...))
}
