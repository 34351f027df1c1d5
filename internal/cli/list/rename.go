package list

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// RenameCmd returns the list rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a list",
		RunE:  handler.Command(runRename),
	}

	// Required flags
	cmd.Flags().String("id", "", "List ID (required)")
	cmd.Flags().String("title", "", "New list title (required)")
	for _, name := range []string{"id", "title"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			log.Printf("Error marking flag as required: %v", err)
		}
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runRename(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	boardID, err := parser.ParseBoardID()
	if err != nil {
		return err
	}
	listID, err := parser.ParseID("id")
	if err != nil {
		return err
	}
	title, err := parser.ParseStringOptional("title")
	if err != nil {
		return err
	}

	if err := c.App.State.RenameList(ctx, boardID, listID, title); err != nil {
		return err
	}

	if f.Quiet {
		f.Printf("%s\n", listID)
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID, "list_id": listID})
	}

	f.Printf("%s\n", styles.Success("List "+listID+" renamed"))
	return nil
}
