package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// sendTimeout bounds a single PUBLISH on top of the caller's deadline
const sendTimeout = 2 * time.Second

// RedisPublisher broadcasts board change events over Redis pub/sub on the
// channel {prefix}:events. The Redis client is shared with the document
// store and is not closed by the publisher.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string

	mu      sync.Mutex
	closed  bool
	pubsubs map[*redis.PubSub]struct{}
}

// NewRedisPublisher creates a publisher on the given client
func NewRedisPublisher(rdb *redis.Client, prefix string) *RedisPublisher {
	return &RedisPublisher{
		rdb:     rdb,
		channel: ChannelName(prefix),
		pubsubs: make(map[*redis.PubSub]struct{}),
	}
}

// ChannelName returns the pub/sub channel used for a key prefix
func ChannelName(prefix string) string {
	return prefix + ":events"
}

// SendEvent stamps the event if needed and publishes it as JSON
func (p *RedisPublisher) SendEvent(ctx context.Context, event Event) error {
	if p == nil || p.rdb == nil {
		return ErrNoConnection
	}
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrPublisherClosed
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// Listen subscribes to the events channel. The subscription is confirmed
// before Listen returns, so events sent afterwards are delivered.
func (p *RedisPublisher) Listen(ctx context.Context) (<-chan Event, error) {
	if p == nil || p.rdb == nil {
		ch := make(chan Event)
		close(ch)
		return ch, ErrNoConnection
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		ch := make(chan Event)
		close(ch)
		return ch, ErrPublisherClosed
	}
	pubsub := p.rdb.Subscribe(ctx, p.channel)
	p.pubsubs[pubsub] = struct{}{}
	p.mu.Unlock()

	if _, err := pubsub.Receive(ctx); err != nil {
		p.release(pubsub)
		return nil, fmt.Errorf("failed to subscribe to %s: %w", p.channel, err)
	}

	eventChan := make(chan Event, 10)
	go p.listenLoop(ctx, pubsub, eventChan)
	return eventChan, nil
}

// listenLoop decodes messages until ctx is done or the subscription closes
func (p *RedisPublisher) listenLoop(ctx context.Context, pubsub *redis.PubSub, eventChan chan Event) {
	defer close(eventChan)
	defer p.release(pubsub)

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.Warn("dropping malformed event", "channel", msg.Channel, "error", err)
				continue
			}
			select {
			case eventChan <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (p *RedisPublisher) release(pubsub *redis.PubSub) {
	p.mu.Lock()
	_, ok := p.pubsubs[pubsub]
	delete(p.pubsubs, pubsub)
	p.mu.Unlock()
	if ok {
		if err := pubsub.Close(); err != nil {
			slog.Debug("failed to close subscription", "error", err)
		}
	}
}

// Close ends every active subscription. Safe to call more than once.
func (p *RedisPublisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	subs := make([]*redis.PubSub, 0, len(p.pubsubs))
	for ps := range p.pubsubs {
		subs = append(subs, ps)
	}
	p.pubsubs = map[*redis.PubSub]struct{}{}
	p.mu.Unlock()

	var firstErr error
	for _, ps := range subs {
		if err := ps.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
