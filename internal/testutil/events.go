package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/madhankd/madhanboard-v2/internal/events"
)

// MockEventPublisher is a mock implementation of events.EventPublisher for testing.
// It records all published events for verification in tests.
type MockEventPublisher struct {
	mu sync.Mutex

	// Recorded events
	SentEvents []events.Event

	// Tracking
	CloseCalled  bool
	ListenCalled bool

	// SendErr, when set, is returned by SendEvent after recording the event
	SendErr error

	// Incoming is delivered to every Listen call, after which the channel closes
	Incoming []events.Event
}

// NewMockEventPublisher creates a new mock event publisher.
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{SentEvents: []events.Event{}}
}

// SendEvent records the event for later verification.
func (m *MockEventPublisher) SendEvent(ctx context.Context, event events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEvents = append(m.SentEvents, event)
	return m.SendErr
}

// Listen returns a channel holding a copy of Incoming that is already closed.
func (m *MockEventPublisher) Listen(ctx context.Context) (<-chan events.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListenCalled = true
	ch := make(chan events.Event, len(m.Incoming))
	for _, e := range m.Incoming {
		ch <- e
	}
	close(ch)
	return ch, nil
}

// Close marks the publisher as closed.
func (m *MockEventPublisher) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return nil
}

// Reset clears all recorded events.
func (m *MockEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEvents = []events.Event{}
	m.CloseCalled = false
	m.ListenCalled = false
}

// EventsForBoard returns all events for a specific board.
func (m *MockEventPublisher) EventsForBoard(boardID string) []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []events.Event
	for _, e := range m.SentEvents {
		if e.BoardID == boardID {
			result = append(result, e)
		}
	}
	return result
}

// EventCount returns the total number of events sent.
func (m *MockEventPublisher) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SentEvents)
}

// Compile-time interface verification
var _ events.EventPublisher = (*MockEventPublisher)(nil)

// WaitForEvent waits for an event on a channel with timeout.
// Returns the event if received, or fails the test on timeout.
func WaitForEvent(t *testing.T, ch <-chan events.Event, timeout time.Duration) events.Event {
	t.Helper()

	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Event channel closed unexpectedly")
		}
		return event
	case <-time.After(timeout):
		t.Fatalf("Timeout waiting for event after %v", timeout)
		return events.Event{}
	}
}

// WaitForCondition waits for a condition to become true within the timeout.
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, description string) bool {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Logf("Timeout waiting for condition: %s", description)
	return false
}
