package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnedBy scopes a query to a single owner. Listing endpoints must always
// include it so cross-owner rows never leave the database.
type OwnedBy struct {
	UserID uuid.UUID
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByTitle struct {
	Title string
}

func (s ByTitle) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title = ?", s.Title)
}
