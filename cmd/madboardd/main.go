package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/madhankd/madhanboard-v2/internal/config"
	"github.com/madhankd/madhanboard-v2/internal/launcher"
	"github.com/madhankd/madhanboard-v2/internal/logging"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Log to stderr (set by systemd) at the configured level
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(os.Stderr, level))

	slog.Info("madboard api starting", "addr", cfg.Server.Addr, "driver", cfg.Store.Driver, "pid", os.Getpid())

	// Serve (blocks until shutdown)
	if err := launcher.Serve(ctx, cfg, ""); err != nil {
		slog.Error("api error", "error", err)
		os.Exit(1)
	}

	slog.Info("madboard api shutting down gracefully")
}
