package service

import (
	"context"

	"blogicum/internal/models"
	"blogicum/internal/repository"
)

type UserService interface {
	GetByID(ctx context.Context, userID int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (s *userService) GetByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}

// UpdateUser edits the caller's own profile. Password and staff flag are not touched here.
func (s *userService) UpdateUser(ctx context.Context, req repository.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, translate(err)
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName

	err = s.userRepo.UpdateUser(ctx, user)
	if err != nil {
		return nil, translate(err)
	}

	return user, nil
}
