package mapper

import (
	"personal-notes-be/internal/entity"
	"personal-notes-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}

func (m *UserMapper) ProviderToEntity(p *model.UserProvider) *entity.UserProvider {
	if p == nil {
		return nil
	}
	return &entity.UserProvider{
		Id:             p.Id,
		UserId:         p.UserId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		AvatarURL:      p.AvatarURL,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *UserMapper) ProviderToModel(p *entity.UserProvider) *model.UserProvider {
	if p == nil {
		return nil
	}
	return &model.UserProvider{
		Id:             p.Id,
		UserId:         p.UserId,
		ProviderName:   p.ProviderName,
		ProviderUserId: p.ProviderUserId,
		AvatarURL:      p.AvatarURL,
		CreatedAt:      p.CreatedAt,
	}
}
