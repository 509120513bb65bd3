package service

import (
	"context"

	"personal-notes-be/internal/dto"
	"personal-notes-be/internal/pkg/serverutils"
	"personal-notes-be/internal/repository/cache"
	"personal-notes-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	userCache  *cache.UserCache
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, userCache *cache.UserCache) IUserService {
	return &userService{
		uowFactory: uowFactory,
		userCache:  userCache,
	}
}

func (s *userService) Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	user, found := s.userCache.Get(ctx, userId)
	if !found {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		user, err = uow.UserRepository().FindById(ctx, userId)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, serverutils.ErrNotFound("user not found")
		}
		s.userCache.Set(ctx, user)
	}

	res := &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
	if user.AvatarURL != nil {
		res.AvatarURL = *user.AvatarURL
	}
	return res, nil
}
