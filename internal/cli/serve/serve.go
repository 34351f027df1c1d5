// Package serve implements the serve command
package serve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/config"
	"github.com/madhankd/madhanboard-v2/internal/launcher"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API over HTTP",
		Long: `Serve boards, lists and items as a JSON API until interrupted.

Routes:
  GET    /boards                 POST   /boards
  GET    /boards/:id             DELETE /boards/:id
  POST   /boards/:id/lists       PUT    /boards/:id/lists/order
  PATCH  /boards/:id/lists/:listId
  PUT    /boards/:id/lists/:listId/position
  DELETE /boards/:id/lists/:listId
  POST   /boards/:id/lists/:listId/items
  PATCH  /boards/:id/lists/:listId/items/:itemId
  DELETE /boards/:id/lists/:listId/items/:itemId
  GET    /events (server-sent board changes)
  GET    /healthz

Examples:
  madboard serve
  madboard serve --addr=:9090
`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (defaults to server.addr from the config)")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	cfg, err := config.Load()
	if err != nil {
		return fail(cmd, fmt.Errorf("failed to load configuration: %w", err))
	}

	if err := launcher.Serve(cmd.Context(), cfg, addr); err != nil {
		return fail(cmd, err)
	}
	return nil
}

// fail reports err on stderr and returns it with the general exit code
func fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return cli.WithExitCode(cli.ExitError, err)
}
