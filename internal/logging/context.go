package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithDockableID creates a child logger with a dockable_id field
func WithDockableID(ctx context.Context, dockableID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("dockable_id", dockableID).Logger()
	return WithContext(ctx, childLogger)
}

// WithPortID creates a child logger with a port_id field
func WithPortID(ctx context.Context, portID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("port_id", portID).Logger()
	return WithContext(ctx, childLogger)
}

// WithWindowID creates a child logger with a window_id field
func WithWindowID(ctx context.Context, windowID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("window_id", windowID).Logger()
	return WithContext(ctx, childLogger)
}
