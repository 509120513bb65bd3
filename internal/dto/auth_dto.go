package dto

import "github.com/google/uuid"

type UserDTO struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	User        UserDTO `json:"user"`
}

// IdentityAssertion carries the claims returned by the OAuth provider after
// a completed handshake.
type IdentityAssertion struct {
	ProviderName   string
	ProviderUserId string
	Email          string
	FullName       string
	AvatarURL      string
}
