package pubsub

import (
	"context"
	"sync"

	"todo-api/domain"
)

const defaultBuffer = 16

// Bus fans mutation events out to live subscribers by topic. Delivery is
// at-most-once: a publish reaches every subscriber registered at that
// moment, and a subscriber whose buffer is full misses the event rather
// than blocking the publisher. Nothing is retained for subscribers that
// connect later.
type Bus struct {
	buffer int

	mu   sync.Mutex
	subs map[string]map[chan domain.Event]struct{}
}

// New creates a bus whose subscriber channels hold up to buffer events.
// A non-positive buffer falls back to the default.
func New(buffer int) *Bus {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Bus{
		buffer: buffer,
		subs:   make(map[string]map[chan domain.Event]struct{}),
	}
}

// Subscribe registers a subscriber on the topic and returns its event
// channel. When ctx is cancelled the subscriber is deregistered and the
// channel closed; no events are delivered after that.
func (b *Bus) Subscribe(ctx context.Context, topic string) <-chan domain.Event {
	ch := make(chan domain.Event, b.buffer)
	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[chan domain.Event]struct{})
	}
	b.subs[topic][ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs[topic], ch)
		b.mu.Unlock()
		// Safe to close here: publishers only touch channels that are
		// still registered, and only while holding the lock.
		close(ch)
	}()
	return ch
}

// Publish delivers the event to every subscriber currently registered on
// the topic.
func (b *Bus) Publish(topic string, ev domain.Event) {
	b.mu.Lock()
	for ch := range b.subs[topic] {
		select {
		case ch <- ev:
		default:
		}
	}
	b.mu.Unlock()
}

// Subscribers reports how many subscribers are registered on the topic.
func (b *Bus) Subscribers(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}
