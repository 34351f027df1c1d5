package item

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// DeleteCmd returns the item delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an item",
		RunE:  handler.Command(runDelete),
	}

	// Required flags
	cmd.Flags().String("id", "", "Item ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}
	addListFlag(cmd)

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	boardID, err := parser.ParseBoardID()
	if err != nil {
		return err
	}
	listID, err := parser.ParseID("list")
	if err != nil {
		return err
	}
	itemID, err := parser.ParseID("id")
	if err != nil {
		return err
	}

	if err := c.App.State.DeleteItem(ctx, boardID, listID, itemID); err != nil {
		return err
	}

	if f.Quiet {
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID, "list_id": listID, "item_id": itemID})
	}

	f.Printf("%s\n", styles.Success("Item "+itemID+" deleted"))
	return nil
}
