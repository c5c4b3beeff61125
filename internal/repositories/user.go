package repositories

import (
	"context"
	"errors"

	"ledgerpay/internal/models"
)

// ErrDuplicateEmail indicates a registration against an email that already
// has an account.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository is the user-directory contract: profile CRUD and account
// status. Balance and currency mutations never go through here; those belong
// to the LedgerRepository.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, hashedPassword string) error
	UpdateStatus(ctx context.Context, userID uint, status string) error
	IncrementTokenVersion(ctx context.Context, userID uint) error
}
