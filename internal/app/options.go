package app

import (
	"log/slog"

	"github.com/madhankd/madhanboard-v2/internal/events"
	"github.com/madhankd/madhanboard-v2/internal/state"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	mirror      state.SnapshotMirror
	noMirror    bool
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithMirror sets the local snapshot store instead of opening the configured one
func WithMirror(m state.SnapshotMirror) Option {
	return func(cfg *appConfig) {
		cfg.mirror = m
	}
}

// WithoutMirror disables the local snapshot store
func WithoutMirror() Option {
	return func(cfg *appConfig) {
		cfg.noMirror = true
	}
}

func buildConfig(opts []Option) *appConfig {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
