package events

import "log/slog"

// Notify publishes through p when one is configured. Services accept a nil
// publisher in tests and one-shot CLI runs.
func Notify(p Publisher, event Event) {
	if p == nil {
		return
	}
	p.Publish(event)
	slog.Debug("event published",
		"event_type", event.Type,
		"record_id", event.RecordID)
}
