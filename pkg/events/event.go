package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type codes emitted by the API.
const (
	TypeUserSignedUp     = "USER_SIGNED_UP"
	TypeUserLogin        = "USER_LOGIN"
	TypeNoteCreated      = "NOTE_CREATED"
	TypeNoteUpdated      = "NOTE_UPDATED"
	TypeNoteDeleted      = "NOTE_DELETED"
	TypeNoteAccessDenied = "NOTE_ACCESS_DENIED"
)

// BaseEvent is the plain implementation used across services.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
