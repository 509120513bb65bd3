package dto

import (
	"time"

	"github.com/google/uuid"
)

// AuditEventMessage is the wire form of a domain event on the internal
// audit bus.
type AuditEventMessage struct {
	EventType  string                 `json:"event_type"`
	ActorId    *uuid.UUID             `json:"actor_id,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}
