package repositories

import (
	"context"
	"errors"
	"testing"

	"ledgerpay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMemUser(t *testing.T, repo LedgerRepository, email string, balance int64) *models.User {
	t.Helper()
	user := &models.User{
		Email:     email,
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
		Balance:   balance,
		Currency:  "USD",
		Status:    models.UserStatusActive,
	}
	require.NoError(t, repo.SaveUser(context.Background(), user))
	return user
}

func TestInMemoryLedger_FailedTransactionLeavesNothingBehind(t *testing.T) {
	repo := NewInMemoryLedger()
	user := seedMemUser(t, repo, "alice@example.com", 1000)

	boom := errors.New("boom")
	err := repo.ExecuteInTransaction(context.Background(), func(tx LedgerRepository) error {
		u, err := tx.GetUserForUpdate(context.Background(), user.ID)
		require.NoError(t, err)
		u.Balance += 500
		require.NoError(t, tx.SaveUser(context.Background(), u))
		require.NoError(t, tx.SavePayment(context.Background(), &models.Payment{
			UserID:    u.ID,
			Amount:    500,
			Currency:  "USD",
			Method:    models.PaymentMethodProcessor,
			Reference: "pi_rollback",
			Status:    models.PaymentStatusPending,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	stored, err := repo.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stored.Balance)

	_, err = repo.GetPaymentByReference(context.Background(), "pi_rollback")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestInMemoryLedger_NestedTransactionJoinsEnclosing(t *testing.T) {
	repo := NewInMemoryLedger()
	user := seedMemUser(t, repo, "alice@example.com", 0)

	err := repo.ExecuteInTransaction(context.Background(), func(tx LedgerRepository) error {
		return tx.ExecuteInTransaction(context.Background(), func(inner LedgerRepository) error {
			u, err := inner.GetUserForUpdate(context.Background(), user.ID)
			if err != nil {
				return err
			}
			u.Balance = 700
			return inner.SaveUser(context.Background(), u)
		})
	})
	require.NoError(t, err)

	stored, err := repo.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(700), stored.Balance)
}

func TestInMemoryLedger_LastTransactionCoversBothRoles(t *testing.T) {
	repo := NewInMemoryLedger()
	alice := seedMemUser(t, repo, "alice@example.com", 1000)
	bob := seedMemUser(t, repo, "bob@example.com", 0)

	require.NoError(t, repo.SaveTransaction(context.Background(), &models.Transaction{
		SenderID:   alice.ID,
		ReceiverID: alice.ID,
		Amount:     1000,
		Currency:   "USD",
		Type:       models.TransactionTypePayment,
		Status:     models.TransactionStatusCompleted,
	}))
	require.NoError(t, repo.SaveTransaction(context.Background(), &models.Transaction{
		SenderID:   alice.ID,
		ReceiverID: bob.ID,
		Amount:     400,
		Currency:   "USD",
		Type:       models.TransactionTypeTransfer,
		Status:     models.TransactionStatusCompleted,
	}))

	// Bob only ever received, yet the transfer is his latest transaction.
	last, err := repo.GetLastTransaction(context.Background(), bob.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, models.TransactionTypeTransfer, last.Type)

	none, err := repo.GetLastTransaction(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestInMemoryLedger_GettersReturnCopies(t *testing.T) {
	repo := NewInMemoryLedger()
	user := seedMemUser(t, repo, "alice@example.com", 1000)

	first, err := repo.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	first.Balance = 999999

	second, err := repo.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), second.Balance)
}
