package openms

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with index-specific helpers.
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

// LogIngest logs an ingestion batch.
func (l *Logger) LogIngest(mode PayloadMode, maps, count int, err error) {
	if err != nil {
		l.Error("ingest failed",
			"mode", mode.String(),
			"maps", maps,
			"error", err,
		)
	} else {
		l.Info("ingest completed",
			"mode", mode.String(),
			"maps", maps,
			"features", count,
		)
	}
}

// LogBuild logs a tree rebuild.
func (l *Logger) LogBuild(size int, duration time.Duration) {
	l.Debug("tree rebuilt",
		"size", size,
		"duration", duration,
	)
}

// LogNeighborhood logs a neighborhood query.
func (l *Logger) LogNeighborhood(center int, results uint64, err error) {
	if err != nil {
		l.Error("neighborhood query failed",
			"center", center,
			"error", err,
		)
	} else {
		l.Debug("neighborhood query completed",
			"center", center,
			"results", results,
		)
	}
}

// LogRegion logs a region query.
func (l *Logger) LogRegion(results uint64, err error) {
	if err != nil {
		l.Error("region query failed",
			"error", err,
		)
	} else {
		l.Debug("region query completed",
			"results", results,
		)
	}
}

// LogTransform logs a retention time transformation.
func (l *Logger) LogTransform(maps int, err error) {
	if err != nil {
		l.Error("transform failed",
			"maps", maps,
			"error", err,
		)
	} else {
		l.Info("transform applied",
			"maps", maps,
		)
	}
}
