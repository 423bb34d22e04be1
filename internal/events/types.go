package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventDatabaseOpened   EventType = "db_opened"
	EventDatabaseExported EventType = "db_exported"
	EventTeamUpdated      EventType = "team_updated"
	EventStaffUpdated     EventType = "staff_updated"
	EventLogoReplaced     EventType = "logo_replaced"
)

// Event represents a change to the open database or its assets
type Event struct {
	Type       EventType `json:"type"`
	RecordID   int       `json:"record_id,omitempty"` // team or staff ID, 0 for file-level events
	Path       string    `json:"path,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id"` // Monotonically increasing sequence number for ordering
}
