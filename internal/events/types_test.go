package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEventTypes(t *testing.T) {
	if string(EventBoardChanged) != "board_changed" {
		t.Errorf("Expected board_changed, got %s", EventBoardChanged)
	}
}

func TestEvent_JSONFieldNames(t *testing.T) {
	event := Event{
		Type:      EventBoardChanged,
		BoardID:   "b1",
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"type", "board_id", "timestamp"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, raw)
		}
	}
}

func TestChannelName(t *testing.T) {
	if got := ChannelName("madboard"); got != "madboard:events" {
		t.Errorf("ChannelName() = %s", got)
	}
}
