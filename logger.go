package cayley

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with search-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithGraph adds the graph shape to the logger.
func (l *Logger) WithGraph(stateSize, generators int) *Logger {
	return &Logger{
		Logger: l.Logger.With("state_size", stateSize, "generators", generators),
	}
}

// LogLayer logs a finished BFS layer.
func (l *Logger) LogLayer(ctx context.Context, layer, size int, stored bool) {
	l.DebugContext(ctx, "layer explored",
		"layer", layer,
		"size", size,
		"stored", stored,
	)
}

// LogBFS logs the outcome of a BFS call.
func (l *Logger) LogBFS(ctx context.Context, layers, vertices int, completed bool, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "bfs failed",
			"layers", layers,
			"vertices", vertices,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "bfs finished",
		"layers", layers,
		"vertices", vertices,
		"completed", completed,
		"duration", duration,
	)
}

// LogMemoryRelease logs a memory reclaim triggered by a large estimate.
func (l *Logger) LogMemoryRelease(ctx context.Context, estimatedBytes, threshold int64) {
	l.DebugContext(ctx, "memory released",
		"estimated_bytes", estimatedBytes,
		"threshold", threshold,
	)
}
