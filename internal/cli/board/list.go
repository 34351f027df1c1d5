package board

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all boards",
		Long:  "List all boards, newest first.",
		RunE:  handler.Command(runList),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, _ *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	if err := c.App.State.LoadBoards(ctx); err != nil {
		return err
	}
	boards := c.App.State.Snapshot().Boards.Data

	if f.Quiet {
		// Just print IDs (one per line)
		for _, b := range boards {
			f.Printf("%s\n", b.ID)
		}
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"boards": boards})
	}

	if len(boards) == 0 {
		f.Printf("No boards found\n")
		return nil
	}

	f.Printf("Found %d boards:\n\n", len(boards))
	for _, b := range boards {
		f.Printf("%s\n", styles.RenderBoardSummary(b))
	}
	return nil
}
