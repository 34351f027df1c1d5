package board

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a board",
		Long: `Delete a board with all its lists and items
(requires confirmation unless --force or --quiet).`,
		RunE: handler.Command(runDelete),
	}

	// Required flags
	cmd.Flags().String("id", "", "Board ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().Bool("force", false, "Skip confirmation")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	boardID, err := parser.ParseID("id")
	if err != nil {
		return err
	}
	force, _ := parser.ParseBool("force")

	// Get board details for confirmation
	board, err := c.App.BoardService.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return f.FailWithSuggestion(fmt.Errorf("board %s: %w", boardID, boardservice.ErrBoardNotFound),
			"Use 'madboard board list' to see available boards")
	}

	// Ask for confirmation unless force, quiet or JSON mode
	if !force && !f.Quiet && !f.JSON {
		f.Printf("Delete board '%s' with %d lists and %d items? (y/N): ",
			board.Name, len(board.BoardList), board.ItemCount())
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			f.Printf("Cancelled\n")
			return nil
		}
	}

	if err := c.App.State.DeleteBoard(ctx, boardID); err != nil {
		return err
	}

	if f.Quiet {
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID})
	}

	f.Printf("%s\n", styles.Success("Board "+boardID+" deleted successfully"))
	return nil
}
