package services

import (
	"context"

	"github.com/yigit/studybuddy/internal/app/models/dto"
	"github.com/yigit/studybuddy/internal/app/repositories"
)

// UserService defines the interface for user profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	userRepo *repositories.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

// GetProfile returns the user's profile without the password hash
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(user), nil
}
