package specification

import "gorm.io/gorm"

type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByProviderSubject matches an external identity link.
type ByProviderSubject struct {
	ProviderName   string
	ProviderUserId string
}

func (s ByProviderSubject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider_name = ? AND provider_user_id = ?", s.ProviderName, s.ProviderUserId)
}
