package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is an owned record. UserId is set at creation and never changes;
// it is the sole authorization key for view/update/delete.
type Note struct {
	Id        uuid.UUID
	Title     string
	Content   string
	UserId    uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
