// Package use holds all cli commands related to setting contextual information
// e.g., madboard use ...
package use

import (
	"github.com/spf13/cobra"
)

// UseCmd returns the use parent command
func UseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use",
		Short: "Manage contextual settings (board)",
		Long: `Set and manage contextual information for the current shell session.

The 'use' command sets context that applies to subsequent commands,
so --board does not have to be repeated.

Examples:
  eval $(madboard use board <board-id>)  # Use a board
  eval $(madboard use board --clear)     # Clear board context
  madboard use board --show              # Show current board`,
	}

	cmd.AddCommand(BoardCmd())

	return cmd
}
