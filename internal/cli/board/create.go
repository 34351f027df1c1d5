package board

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a new board seeded with the To-Do, Done and Pending lists.

Examples:
  # Simple board (human-readable output)
  madboard board create --name="Sprint 1"

  # JSON output for agents
  madboard board create --name="Sprint 1" --json

  # Quiet mode for bash capture
  BOARD_ID=$(madboard board create --name="Sprint 1" --quiet)

  # Description from stdin
  echo "Two week sprint" | madboard board create --name="Sprint 1" --description=-
`,
		RunE: handler.Command(runCreate),
	}

	// Required flags
	cmd.Flags().String("name", "", "Board name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().String("description", "", "Board description (use - for stdin)")

	// Agent-friendly flags
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	name, err := parser.ParseStringOptional("name")
	if err != nil {
		return err
	}
	description, err := parser.ParseDescription("description")
	if err != nil {
		return err
	}

	board, err := c.App.State.CreateBoard(ctx, name, description)
	if err != nil {
		if board != nil && board.ID != "" {
			return f.FailWithSuggestion(err,
				"The board "+board.ID+" was created but not fully seeded; delete it with 'madboard board delete --id "+board.ID+"'")
		}
		return err
	}

	if f.Quiet {
		f.Printf("%s\n", board.ID)
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board": board})
	}

	f.Printf("%s\n", styles.Success("Board '"+board.Name+"' created successfully (ID: "+board.ID+")"))
	for _, list := range board.BoardList {
		f.Printf("  %s (%d item%s)\n", list.Title, len(list.Items), plural(len(list.Items)))
	}
	return nil
}

// plural returns "s" unless n is 1
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
