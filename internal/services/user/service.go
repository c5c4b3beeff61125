// Package user is the user directory: public profile reads and the narrow
// profile update surface. Only first name, last name and password are
// writable; email, role, balance and status are managed elsewhere.
package user

import (
	"context"
	"errors"
	"log/slog"

	"ledgerpay/internal/models"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/utils"
	"ledgerpay/internal/validation"
)

// ErrNothingToUpdate is returned for an update request with no writable
// fields set.
var ErrNothingToUpdate = errors.New("no updatable fields provided")

// Service is the user directory contract.
type Service interface {
	GetProfile(ctx context.Context, userID uint) (*models.PublicProfile, error)
	UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*models.PublicProfile, error)
}

// UpdateProfileRequest carries the writable profile fields. Nil means leave
// unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Password  *string `json:"password,omitempty"`
}

type service struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewService(userRepo repositories.UserRepository, logger *slog.Logger) Service {
	return &service{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*models.PublicProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile := user.PublicProfile()
	return &profile, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*models.PublicProfile, error) {
	if req.FirstName == nil && req.LastName == nil && req.Password == nil {
		return nil, ErrNothingToUpdate
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		if err := validation.ValidatePassword(*req.Password); err != nil {
			return nil, err
		}
		hashed, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, errors.New("failed to hash password")
		}
		user.Password = hashed
		// A password change invalidates every outstanding session.
		user.TokenVersion++
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID, "password_changed", req.Password != nil)
	profile := user.PublicProfile()
	return &profile, nil
}
