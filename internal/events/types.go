package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	// EventBoardChanged is sent after any successful write to a board, its
	// lists or its items
	EventBoardChanged EventType = "board_changed"
)

// Event represents a board change notification
type Event struct {
	Type      EventType `json:"type"`
	BoardID   string    `json:"board_id"`  // Which board was modified
	Timestamp time.Time `json:"timestamp"` // When the event occurred
}
