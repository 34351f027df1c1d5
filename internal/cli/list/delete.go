package list

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
)

// DeleteCmd returns the list delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a list and its items",
		Long: `Delete a list with all its items. The remaining lists are renumbered
so their positions stay contiguous.`,
		RunE: handler.Command(runDelete),
	}

	// Required flags
	cmd.Flags().String("id", "", "List ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		log.Printf("Error marking flag as required: %v", err)
	}

	// Optional flags
	cmd.Flags().Bool("force", false, "Skip confirmation")

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
	listID, err := parser.ParseID("id")
	if err != nil {
		return err
	}
	force, _ := parser.ParseBool("force")

	if !force && !f.Quiet && !f.JSON {
		f.Printf("Delete list %s and all its items? (y/N): ", listID)
		response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response = strings.ToLower(strings.TrimSpace(response))
		if response != "y" && response != "yes" {
			f.Printf("Cancelled\n")
			return nil
		}
	}

	if err := c.App.State.DeleteList(ctx, boardID, listID); err != nil {
		return err
	}

	if f.Quiet {
		return nil
	}

	if f.JSON {
		return f.JSONResult(map[string]any{"board_id": boardID, "list_id": listID})
	}

	f.Printf("%s\n", styles.Success(fmt.Sprintf("List %s deleted", listID)))
	return nil
}
