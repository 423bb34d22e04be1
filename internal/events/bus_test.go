package events

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	bus := NewBus(clock)
	defer bus.Close()

	a, cancelA := bus.Subscribe()
	defer cancelA()
	b, cancelB := bus.Subscribe()
	defer cancelB()

	bus.Publish(Event{Type: EventTeamUpdated, RecordID: 7})
	bus.Publish(Event{Type: EventStaffUpdated, RecordID: 3})

	for _, ch := range []<-chan Event{a, b} {
		first := <-ch
		second := <-ch
		assert.Equal(t, EventTeamUpdated, first.Type)
		assert.Equal(t, 7, first.RecordID)
		assert.Equal(t, clock.Now(), first.Timestamp)
		assert.Less(t, first.SequenceID, second.SequenceID)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus(nil)

	ch, cancel := bus.Subscribe()
	cancel()
	cancel() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// Publishing with no subscribers is fine
	bus.Publish(Event{Type: EventDatabaseOpened})
}

func TestBusDropsWhenFull(t *testing.T) {
	bus := NewBus(nil)
	ch, cancel := bus.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		bus.Publish(Event{Type: EventTeamUpdated, RecordID: i})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestBusClose(t *testing.T) {
	bus := NewBus(nil)
	ch, _ := bus.Subscribe()

	bus.Close()
	_, open := <-ch
	assert.False(t, open)

	late, _ := bus.Subscribe()
	_, open = <-late
	assert.False(t, open, "subscribing after close yields a closed channel")

	bus.Publish(Event{Type: EventTeamUpdated}) // ignored
	bus.Close()                                // idempotent
}

func TestNotifyNilPublisher(t *testing.T) {
	require.NotPanics(t, func() {
		Notify(nil, Event{Type: EventTeamUpdated})
	})
}
