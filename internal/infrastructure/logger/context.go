package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey  contextKey = "logger"
	commandKey contextKey = "command"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithCommand tags ctx with the CLI command being run and attaches a logger
// carrying the same field
func WithCommand(ctx context.Context, logger *zap.Logger, command string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, commandKey, command)
	enriched := logger.With(zap.String("command", command))
	return WithContext(ctx, enriched), enriched
}

// GetCommand retrieves the command name from context
func GetCommand(ctx context.Context) string {
	if cmd, ok := ctx.Value(commandKey).(string); ok {
		return cmd
	}
	return ""
}
