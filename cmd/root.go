package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli/board"
	"github.com/madhankd/madhanboard-v2/internal/cli/item"
	"github.com/madhankd/madhanboard-v2/internal/cli/list"
	"github.com/madhankd/madhanboard-v2/internal/cli/serve"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
	"github.com/madhankd/madhanboard-v2/internal/cli/tutorial"
	"github.com/madhankd/madhanboard-v2/internal/cli/use"
	"github.com/madhankd/madhanboard-v2/internal/cli/watch"
	"github.com/madhankd/madhanboard-v2/internal/config"
	"github.com/madhankd/madhanboard-v2/internal/logging"
)

// logCloser holds the log file opened for the running command
var logCloser io.Closer

var rootCmd = &cobra.Command{
	Use:   "madboard",
	Short: "madboard - Kanban boards in a hosted document store",
	Long: `madboard manages Kanban boards: boards hold ordered lists, lists hold items.

Boards live in the configured document store (Redis or Azure Tables); the last
board shown is kept in a local snapshot for offline reads.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}
	},
}

func init() {
	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(list.ListCmd())
	rootCmd.AddCommand(item.ItemCmd())
	rootCmd.AddCommand(use.UseCmd())
	rootCmd.AddCommand(watch.WatchCmd())
	rootCmd.AddCommand(serve.ServeCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())
}

// setup initializes logging and styles from the config before any command runs
func setup(*cobra.Command, []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	closer, err := logging.Init(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logCloser = closer

	styles.Init(cfg.ColorScheme)
	return nil
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
