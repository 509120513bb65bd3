package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProvider links a local account to an external OAuth identity.
// The (ProviderName, ProviderUserId) pair belongs to exactly one user.
type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}
