// Package list implements the list subcommands
package list

import "github.com/spf13/cobra"

// ListCmd returns the list parent command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the lists of a board",
		Long:  "Add, rename, reorder, move, and delete the lists of a board.",
	}

	cmd.AddCommand(AddCmd())
	cmd.AddCommand(RenameCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ReorderCmd())
	cmd.AddCommand(MoveCmd())

	return cmd
}
