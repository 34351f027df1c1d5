// Package item implements the item subcommands
package item

import "github.com/spf13/cobra"

// ItemCmd returns the item parent command
func ItemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of a list",
		Long:  "Add, rename, and delete the items of a list.",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// addListFlag registers the required --list flag
func addListFlag(cmd *cobra.Command) {
	cmd.Flags().String("list", "", "List ID (required)")
	_ = cmd.MarkFlagRequired("list")
}
