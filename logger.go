package fde

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with encoder-specific context.
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

// WithConfig adds the shape of an encoding space to the logger.
func (l *Logger) WithConfig(cfg Config) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			"dimension", cfg.Dimension,
			"repetitions", cfg.NumRepetitions,
			"simhash_projections", cfg.NumSimHashProjections,
			"projection", cfg.ProjectionType.String(),
			"output_dimension", cfg.OutputDimension(),
		),
	}
}

// LogEncode logs a single point cloud encoding.
func (l *Logger) LogEncode(ctx context.Context, kind EncodingType, points int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"kind", kind.String(),
			"points", points,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"kind", kind.String(),
			"points", points,
		)
	}
}

// LogBatch logs a batch encoding.
func (l *Logger) LogBatch(ctx context.Context, kind EncodingType, clouds int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch encode failed",
			"kind", kind.String(),
			"clouds", clouds,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "batch encode completed",
			"kind", kind.String(),
			"clouds", clouds,
		)
	}
}
