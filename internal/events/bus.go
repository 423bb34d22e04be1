// Package events fans change notifications out to in-process listeners
package events

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
)

// Publisher is what the services depend on to announce changes
type Publisher interface {
	Publish(event Event)
}

// subscriberBuffer is the per-listener queue depth. A listener that falls
// this far behind starts losing events.
const subscriberBuffer = 64

// Bus delivers every published event to every subscriber without blocking
// the publisher.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Event
	nextID int
	seq    atomic.Int64
	clock  clockwork.Clock
	closed bool
}

// NewBus creates a bus stamping events with clock
func NewBus(clock clockwork.Clock) *Bus {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Bus{
		subs:  make(map[int]chan Event),
		clock: clock,
	}
}

// Publish stamps the event and queues it for every subscriber.
// Full subscriber queues drop the event.
func (b *Bus) Publish(event Event) {
	event.SequenceID = b.seq.Add(1)
	if event.Timestamp.IsZero() {
		event.Timestamp = b.clock.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("event dropped, subscriber queue full",
				"subscriber", id,
				"event_type", event.Type,
				"sequence", event.SequenceID)
		}
	}
}

// Subscribe returns a channel of future events and a function that stops
// delivery and closes the channel.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Close closes every subscriber channel. Later publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

var _ Publisher = (*Bus)(nil)
