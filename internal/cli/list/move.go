package list

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// MoveCmd returns the list move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a list to a position",
		Long: `Move a list to a zero-based position, shifting the others.
Positions past either end are clamped.

Examples:
  madboard list move --id=<list-id> --position=0
`,
		RunE: handler.Command(runMove),
	}

	// Required flags
	cmd.Flags().String("id", "", "List ID (required)")
	cmd.Flags().Int("position", 0, "Target position, starting at 0 (required)")
	for _, name := range []string{"id", "position"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Printf("Error marking flag as required: %v", err)
		}
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	boardID, err := parser.ParseBoardID()
	if err != nil {
		return err
	}
	listID, err := parser.ParseID("id")
	if err != nil {
		return err
	}
	position, err := parser.ParseInt("position")
	if err != nil {
		return err
	}

	if err := c.App.State.MoveList(ctx, boardID, listID, position); err != nil {
		return err
	}

	if f.Quiet {
		f.Printf("%s\n", listID)
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID, "list_id": listID, "position": position})
	}

	f.Printf("%s\n", styles.Success(fmt.Sprintf("List %s moved to position %d", listID, position)))
	return nil
}
