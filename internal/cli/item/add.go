package item

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// AddCmd returns the item add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an item to a list",
		Long: `Add an item after the list's last item.

Examples:
  madboard item add --list=<list-id> --title="Write docs"
  madboard item add --list=<list-id> --title="Write docs" --description="Cover the API"
  cat notes.md | madboard item add --list=<list-id> --title="Notes" --description=-
`,
		RunE: handler.Command(runAdd),
	}

	// Required flags
	cmd.Flags().String("title", "", "Item title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addListFlag(cmd)

	// Optional flags
	cmd.Flags().String("description", "", "Item description (use - for stdin)")

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
	listID, err := parser.ParseID("list")
	if err != nil {
		return err
	}
	title, err := parser.ParseStringOptional("title")
	if err != nil {
		return err
	}
	description, err := parser.ParseDescription("description")
	if err != nil {
		return err
	}

	created, err := c.App.State.AddItem(ctx, boardID, listID, title, description)
	if err != nil {
		return err
	}

	if f.Quiet {
		f.Printf("%s\n", created.ID)
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID, "list_id": listID, "item": created})
	}

	f.Printf("%s\n", styles.Success("Item '"+created.Title+"' added (ID: "+created.ID+")"))
	return nil
}
