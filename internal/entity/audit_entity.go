package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuditLog struct {
	Id         uuid.UUID
	EventType  string
	ActorId    *uuid.UUID
	Details    map[string]interface{}
	OccurredAt time.Time
	CreatedAt  time.Time
}
