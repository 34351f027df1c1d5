package board

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
)

// markdownWidth is the wrap width for rendered markdown
const markdownWidth = 80

// ShowCmd returns the board show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a board with its lists and items",
		Long: `Show a board with its lists and items.

The board is also saved as the local snapshot, so 'madboard board show --cached'
works without a connection to the store.

Examples:
  madboard board show --board=<board-id>
  madboard board show --markdown
  madboard board show --cached --json
`,
		RunE: handler.Command(runShow),
	}

	cli.AddBoardFlag(cmd)
	cmd.Flags().Bool("markdown", false, "Render the board as a markdown document")
	cmd.Flags().Bool("cached", false, "Show the local snapshot instead of fetching")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd)

	return cmd
}

func runShow(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	markdown, _ := parser.ParseBool("markdown")
	cached, _ := parser.ParseBool("cached")

	if cached {
		ok, err := c.App.State.RestoreFromMirror(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return f.FailWithSuggestion(fmt.Errorf("no cached board: %w", boardservice.ErrBoardNotFound),
				"Run 'madboard board show' once while connected")
		}
	} else {
		boardID, err := parser.ParseBoardID()
		if err != nil {
			return err
		}
		board, err := c.App.State.FetchBoard(ctx, boardID)
		if err != nil {
			return err
		}
		if board == nil {
			return f.FailWithSuggestion(fmt.Errorf("board %s: %w", boardID, boardservice.ErrBoardNotFound),
				"Use 'madboard board list' to see available boards")
		}
	}

	board := c.App.State.Snapshot().Current.Data

	if f.Quiet {
		for _, list := range board.BoardList {
			f.Printf("%s\n", list.ID)
		}
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board": board})
	}

	if markdown {
		f.Printf("%s\n", styles.RenderMarkdown(styles.BoardMarkdown(board), markdownWidth))
		return nil
	}

	f.Printf("%s\n", styles.RenderBoard(board))
	return nil
}
