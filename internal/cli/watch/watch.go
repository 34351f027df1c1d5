// Package watch implements the watch command
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/madhankd/madhanboard-v2/internal/cli"
	"github.com/madhankd/madhanboard-v2/internal/cli/handler"
	"github.com/madhankd/madhanboard-v2/internal/events"
	boardservice "github.com/madhankd/madhanboard-v2/internal/services/board"
)

// errEventsDisabled is returned when the configured store has no event channel
var errEventsDisabled = errors.New("live updates are not available for this store")

// WatchCmd returns the watch command
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow board changes as they happen",
		Long: `Print a line for every change to a board until interrupted.

With --board (or MADBOARD_BOARD) only that board is followed. Its cached
snapshot, if any, is printed first while the current copy loads, and the
snapshot is refreshed after each change so 'madboard board show --cached'
stays current.

Examples:
  madboard watch
  madboard watch --board=<board-id> --json
`,
		RunE: handler.Command(runWatch),
	}

	cli.AddBoardFlag(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, c *cli.CLI, f *cli.OutputFormatter) error {
	publisher := c.App.Events()
	if publisher == nil {
		return f.FailWithSuggestion(errEventsDisabled, "Use the redis store driver to follow changes")
	}

	// The board is optional here
	boardID, _ := cli.GetBoardID(cmd)
	if boardID != "" {
		// Show the last snapshot straight away; the fetch below replaces it
		restored, err := c.App.State.RestoreBoardFromMirror(ctx, boardID)
		if err != nil {
			slog.Warn("failed to restore cached board", "board_id", boardID, "error", err)
		}
		if restored {
			if err := reportCached(c, f); err != nil {
				return err
			}
		}

		board, err := c.App.State.FetchBoard(ctx, boardID)
		if err != nil {
			return err
		}
		if board == nil {
			return f.FailWithSuggestion(fmt.Errorf("board %s: %w", boardID, boardservice.ErrBoardNotFound),
				"Use 'madboard board list' to see available boards")
		}
	}

	ch, err := publisher.Listen(ctx)
	if err != nil {
		return fmt.Errorf("failed to listen for events: %w", err)
	}

	if !f.Quiet && !f.JSON {
		target := "all boards"
		if boardID != "" {
			target = "board " + boardID
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", target)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			if boardID != "" && event.BoardID != boardID {
				continue
			}
			c.App.State.HandleEvent(ctx, event)
			if err := report(c, f, event); err != nil {
				return err
			}
		}
	}
}

// reportCached prints the restored snapshot of the open board
func reportCached(c *cli.CLI, f *cli.OutputFormatter) error {
	cached := c.App.State.Snapshot().Current.Data
	if f.Quiet || cached == nil {
		return nil
	}
	if f.JSON {
		return f.JSONResult(map[string]any{"cached": true, "board": cached})
	}
	f.Printf("[cached] %s: %d lists, %d items\n", cached.Name, len(cached.BoardList), cached.ItemCount())
	return nil
}

// report prints one event in the formatter's mode
func report(c *cli.CLI, f *cli.OutputFormatter, event events.Event) error {
	if f.Quiet {
		f.Printf("%s\n", event.BoardID)
		return nil
	}

	current := c.App.State.Snapshot().Current.Data
	if current != nil && current.ID != event.BoardID {
		current = nil
	}

	if f.JSON {
		fields := map[string]any{"event": event}
		if current != nil {
			fields["board"] = current
		}
		return f.JSONResult(fields)
	}

	stamp := event.Timestamp
	if stamp.IsZero() {
		stamp = time.Now()
	}
	f.Printf("[%s] board %s changed\n", stamp.Local().Format(time.TimeOnly), event.BoardID)
	if current != nil {
		f.Printf("  %s: %d lists, %d items\n", current.Name, len(current.BoardList), current.ItemCount())
	}
	return nil
}
