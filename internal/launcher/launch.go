// Package launcher boots the long-running HTTP API
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/api"
	"github.com/madhankd/madhanboard-v2/internal/app"
	"github.com/madhankd/madhanboard-v2/internal/config"
)

// drainDelay gives in-flight store calls a moment before resources close
const drainDelay = 100 * time.Millisecond

// Serve opens the configured app and serves the API on addr until ctx is
// done. An empty addr uses the configured server address.
func Serve(ctx context.Context, cfg *config.Config, addr string) error {
	if addr == "" {
		addr = cfg.Server.Addr
	}

	application, err := app.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	// app cleanup
	defer func() {
		drainCtx, drainCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer drainCancel()

		select {
		case <-drainCtx.Done():
			slog.Info("drain period complete, closing store")
		case <-time.After(drainDelay):
		}

		if err := application.Close(); err != nil {
			slog.Error("error closing app", "error", err)
		}
	}()

	if application.Events() == nil {
		slog.Info("continuing without live updates", "driver", cfg.Store.Driver)
	}

	server := api.NewServer(application)
	if err := server.Run(ctx, addr); err != nil {
		return err
	}

	slog.Info("shutdown signal received, cleaning up")
	return nil
}
