// Package repositories provides the data access layer. It owns the durable
// Users, Payments and Transactions entities and the atomic multi-row commit
// used by the payment and transfer services.
package repositories

import (
	"context"
	"errors"

	"ledgerpay/internal/models"
)

// Repository-level errors. Services translate these into domain errors at the
// operation boundary.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrConflict            = errors.New("transactional write conflicted")
	ErrDatabaseOperation   = errors.New("database operation failed")
)

// LedgerRepository is the storage contract for the wallet ledger. Writes that
// belong to one logical operation must go through ExecuteInTransaction so the
// "create payment + create transaction + update one-or-two user balances"
// unit is all-or-nothing.
type LedgerRepository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	// GetUserForUpdate reads the user row holding a row-level write lock.
	// Only meaningful inside ExecuteInTransaction.
	GetUserForUpdate(ctx context.Context, id uint) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error

	GetPaymentByID(ctx context.Context, id uint) (*models.Payment, error)
	GetPaymentByReference(ctx context.Context, reference string) (*models.Payment, error)
	SavePayment(ctx context.Context, payment *models.Payment) error

	// GetLastTransaction returns the user's most recent transaction across
	// sender and receiver roles, or nil when the user has none.
	GetLastTransaction(ctx context.Context, userID uint) (*models.Transaction, error)
	SaveTransaction(ctx context.Context, tx *models.Transaction) error
	// GetTransactionsForUser returns transactions where the user is sender or
	// receiver, most recent first, with sender/receiver records preloaded.
	GetTransactionsForUser(ctx context.Context, userID uint) ([]models.Transaction, error)

	// ExecuteInTransaction runs fn against a transactional view of the ledger
	// and commits atomically. Commits lost to a concurrent writer are retried
	// a bounded number of times before ErrConflict is returned.
	ExecuteInTransaction(ctx context.Context, fn func(LedgerRepository) error) error
}
