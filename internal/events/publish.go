package events

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// DefaultAttempts is how many sends a board change notification gets
const DefaultAttempts = 3

// retryBaseDelay is the wait before the second attempt; it doubles after
// every further failure
const retryBaseDelay = 50 * time.Millisecond

// PublishWithRetry sends event, retrying failed sends with exponential
// backoff. A nil client is a no-op.
//
// The wait between attempts ends as soon as ctx is done; the context error is
// then returned joined with the last send error.
func PublishWithRetry(ctx context.Context, client EventPublisher, event Event, attempts int) error {
	if client == nil {
		return nil
	}

	var lastErr error
	for attempt := range attempts {
		if attempt > 0 {
			if err := wait(ctx, retryBaseDelay<<(attempt-1)); err != nil {
				return errors.Join(lastErr, err)
			}
		}
		lastErr = client.SendEvent(ctx, event)
		if lastErr == nil {
			return nil
		}
		slog.Debug("event publish failed",
			"attempt", attempt+1,
			"attempts", attempts,
			"event_type", event.Type,
			"board_id", event.BoardID,
			"error", lastErr)
	}
	return lastErr
}

// NotifyBoardChanged publishes a board_changed event for boardID.
// Failures are logged, never returned: a missed notification must not fail
// the write that caused it.
func NotifyBoardChanged(ctx context.Context, client EventPublisher, boardID string) {
	if client == nil {
		return
	}
	event := Event{Type: EventBoardChanged, BoardID: boardID}
	if err := PublishWithRetry(ctx, client, event, DefaultAttempts); err != nil {
		slog.Warn("failed to send event for board", "board_id", boardID, "error", err)
	}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
