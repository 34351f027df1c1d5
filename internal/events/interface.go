package events

import "context"

// EventPublisher defines the interface for sending and receiving events.
// This interface allows for loose coupling and easier testing by depending
// on behavior rather than concrete implementation.
type EventPublisher interface {
	// SendEvent publishes an event to every listener. It gives up when ctx
	// is done.
	SendEvent(ctx context.Context, event Event) error

	// Listen subscribes to events until ctx is done. The returned channel
	// is closed when the subscription ends.
	Listen(ctx context.Context) (<-chan Event, error)

	// Close stops all listeners
	Close() error
}

// Compile-time verification that *RedisPublisher implements EventPublisher
var _ EventPublisher = (*RedisPublisher)(nil)
