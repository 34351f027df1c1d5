package use

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
)

// BoardCmd returns the use board subcommand
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board [board-id]",
		Short: "Set board context for current shell session",
		Long: `Set the current board context using environment variables.
This command outputs shell commands that should be evaluated:

  eval $(madboard use board <board-id>)   # Use a board
  eval $(madboard use board --clear)      # Clear board context
  madboard use board --show               # Show current board

The ` + cli.EnvBoard + ` environment variable will be set in your current shell
session only. The --board flag on other commands takes precedence over
this environment variable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseBoard,
	}

	cmd.Flags().Bool("clear", false, "Clear the current board context")
	cmd.Flags().Bool("show", false, "Show the current board context")
	cmd.Flags().Bool("dry-run", false, "Show what would be exported without outputting shell commands")

	return cmd
}

func runUseBoard(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// --clear needs no store connection
	if clearFlag {
		if dryRun {
			fmt.Fprintf(cmd.ErrOrStderr(), "Would clear %s\n", cli.EnvBoard)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "unset %s\n", cli.EnvBoard)
		fmt.Fprintf(cmd.ErrOrStderr(), "Cleared board context\n")
		return nil
	}

	if showFlag {
		if strings.TrimSpace(os.Getenv(cli.EnvBoard)) == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No board context set\n")
			fmt.Fprintf(cmd.OutOrStdout(), "Use 'eval $(madboard use board <board-id>)' to set one\n")
			return nil
		}
		return handler.Command(showCurrentBoard)(cmd, args)
	}

	if len(args) == 0 {
		err := fmt.Errorf("board ID required")
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\nUsage: eval $(madboard use board <board-id>)\n", err)
		return cli.WithExitCode(cli.ExitUsage, err)
	}

	return handler.Command(setBoard)(cmd, args)
}

func setBoard(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	boardID := strings.TrimSpace(cmd.Flags().Arg(0))
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	// Validate board exists
	board, err := c.App.BoardService.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return f.FailWithSuggestion(fmt.Errorf("board %s: %w", boardID, boardservice.ErrBoardNotFound),
			"Use 'madboard board list' to see available boards")
	}

	// Shell export goes to stdout for eval, everything else to stderr
	if dryRun {
		fmt.Fprintf(cmd.ErrOrStderr(), "Would set %s=%s (%s)\n", cli.EnvBoard, boardID, board.Name)
		return nil
	}

	f.Printf("export %s=%s\n", cli.EnvBoard, boardID)
	fmt.Fprintf(cmd.ErrOrStderr(), "Now using board %s: %s\n", boardID, board.Name)
	return nil
}

func showCurrentBoard(ctx context.Context, _ *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	boardID := strings.TrimSpace(os.Getenv(cli.EnvBoard))

	board, err := c.App.BoardService.GetBoard(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		f.Printf("Current board: %s (board not found)\n", boardID)
		return nil
	}

	f.Printf("Current board: %s (%s)\n", boardID, board.Name)
	return nil
}
