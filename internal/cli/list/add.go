package list

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// AddCmd returns the list add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a list to a board",
		Long: `Append a list after the board's last list.

Examples:
  madboard list add --board=<board-id> --title="Review"
  LIST_ID=$(madboard list add --title="Review" --quiet)
`,
		RunE: handler.Command(runAdd),
	}

	// Required flags
	cmd.Flags().String("title", "", "List title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	boardID, err := parser.ParseBoardID()
	if err != nil {
		return err
	}
	title, err := parser.ParseStringOptional("title")
	if err != nil {
		return err
	}

	created, err := c.App.State.AddList(ctx, boardID, title)
	if err != nil {
		return err
	}

	if f.Quiet {
		f.Printf("%s\n", created.ID)
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID, "list": created})
	}

	f.Printf("%s\n", styles.Success("List '"+created.Title+"' added (ID: "+created.ID+")"))
	f.Printf("  Position: %d\n", created.Order)
	return nil
}
