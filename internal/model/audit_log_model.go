package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventType  string         `gorm:"type:varchar(100);not null;index"`
	ActorId    *uuid.UUID     `gorm:"type:uuid;index"`
	Details    datatypes.JSON `gorm:"type:jsonb"`
	OccurredAt time.Time      `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
