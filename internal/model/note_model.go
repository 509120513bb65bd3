package model

import (
	"time"

	"github.com/google/uuid"
)

// Notes are hard-deleted. There is no DeletedAt column: a removed note is
// gone and cannot be restored.
type Note struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Content   string    `gorm:"type:text"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Note) TableName() string {
	return "notes"
}
