package list

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/cli/styles"
)

// ReorderCmd returns the list reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Set the order of several lists at once",
		Long: `Set the order of several lists at once. All orders are written in a single
batch: either every list moves or none does.

After the update the board must hold each position from 0 exactly once.

Examples:
  madboard list reorder --order="a1=1,b2=0"
  madboard list reorder --order='[{"id":"a1","order":1},{"id":"b2","order":0}]'
`,
		RunE: handler.Command(runReorder),
	}

	// Required flags
	cmd.Flags().String("order", "", "id=order pairs or a JSON array (required)")
	if err := cmd.MarkFlagRequired("order"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runReorder(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	parser := handler.NewFlagParser(cmd, f)
	boardID, err := parser.ParseBoardID()
	if err != nil {
		return err
	}
	spec, err := parser.ParseStringOptional("order")
	if err != nil {
		return err
	}
	orders, err := cli.ParseListOrders(spec)
	if err != nil {
		return f.FailWithSuggestion(err, "Use id=order pairs, e.g. --order=\"a1=1,b2=0\"")
	}

	if err := c.App.State.ReorderLists(ctx, boardID, orders); err != nil {
		return err
	}

	if f.Quiet {
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID, "orders": orders})
	}

	f.Printf("%s\n", styles.Success("Lists reordered"))
	return nil
}
