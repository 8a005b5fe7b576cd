package usecase

import (
	"context"
	"fmt"

	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/dto/response"
	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, req *request.UpdateAvatarRequest) (*response.UserResponse, error)
}

type userService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		users: users,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found: %w", userID.String(), repository.ErrNotFound)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateAvatar is the only user mutation the system supports.
func (s *userService) UpdateAvatar(ctx context.Context, userID uuid.UUID, req *request.UpdateAvatarRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update avatar validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, utils.FormatValidationErrors(errs))
	}

	if err := s.users.UpdateAvatar(ctx, userID, req.AvatarURL); err != nil {
		return nil, fmt.Errorf("update avatar: %w", err)
	}

	s.log.Info("Avatar updated", zap.String("user_id", userID.String()))

	return s.GetProfile(ctx, userID)
}
