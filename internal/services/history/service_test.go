package history

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "ledgerpay/internal/errors"
	"ledgerpay/internal/logging"
	"ledgerpay/internal/models"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/repositories/cache"
	"ledgerpay/internal/services/processor"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProcessor struct {
	status processor.Status
	err    error
}

func (s *stubProcessor) Initiate(context.Context, int64, string, map[string]string) (*processor.Intent, error) {
	return &processor.Intent{Reference: "pi_test_1"}, nil
}

func (s *stubProcessor) Retrieve(context.Context, string) (processor.Status, error) {
	return s.status, s.err
}

func (s *stubProcessor) Refund(context.Context, string, int64) error { return nil }

func newTestService(t *testing.T) (Service, repositories.LedgerRepository, *stubProcessor) {
	t.Helper()
	repo := repositories.NewInMemoryLedger()
	proc := &stubProcessor{status: processor.StatusSettled}
	svc := NewService(repo, proc, nil, logging.Discard())
	return svc, repo, proc
}

func seedUser(t *testing.T, repo repositories.LedgerRepository, email, firstName, lastName string, balance int64) *models.User {
	t.Helper()
	user := &models.User{
		Email:     email,
		Password:  "hashed",
		FirstName: firstName,
		LastName:  lastName,
		Balance:   balance,
		Currency:  "USD",
		Status:    models.UserStatusActive,
	}
	require.NoError(t, repo.SaveUser(context.Background(), user))
	return user
}

func seedTransaction(t *testing.T, repo repositories.LedgerRepository, senderID, receiverID uint, amount int64, txType, description string) {
	t.Helper()
	require.NoError(t, repo.SaveTransaction(context.Background(), &models.Transaction{
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Currency:    "USD",
		Type:        txType,
		Status:      models.TransactionStatusCompleted,
		Description: description,
	}))
}

func TestGetPaymentHistory_MostRecentFirstWithProfiles(t *testing.T) {
	svc, repo, _ := newTestService(t)
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 5000)
	bob := seedUser(t, repo, "bob@example.com", "Bob", "Jones", 0)

	seedTransaction(t, repo, alice.ID, alice.ID, 5000, models.TransactionTypePayment, "Added funds to wallet")
	seedTransaction(t, repo, alice.ID, bob.ID, 2000, models.TransactionTypeTransfer, "Transfer to Bob Jones")

	entries, err := svc.GetPaymentHistory(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, models.TransactionTypeTransfer, entries[0].Type)
	assert.Equal(t, models.TransactionTypePayment, entries[1].Type)

	assert.Equal(t, "alice@example.com", entries[0].Sender.Email)
	assert.Equal(t, "Bob", entries[0].Receiver.FirstName)
	assert.Equal(t, "Jones", entries[0].Receiver.LastName)
}

func TestGetPaymentHistory_OnlyOwnTransactions(t *testing.T) {
	svc, repo, _ := newTestService(t)
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 5000)
	bob := seedUser(t, repo, "bob@example.com", "Bob", "Jones", 3000)
	carol := seedUser(t, repo, "carol@example.com", "Carol", "White", 0)

	seedTransaction(t, repo, bob.ID, carol.ID, 1000, models.TransactionTypeTransfer, "Transfer to Carol White")

	entries, err := svc.GetPaymentHistory(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetPaymentHistory_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.GetPaymentHistory(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestGetBalance_CurrencyFollowsLastTransaction(t *testing.T) {
	svc, repo, _ := newTestService(t)
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 7000)

	// No history yet: account default.
	balance, err := svc.GetBalance(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7000), balance.Balance)
	assert.Equal(t, "USD", balance.Currency)

	seedTransaction(t, repo, alice.ID, alice.ID, 7000, models.TransactionTypePayment, "Added funds to wallet")
	require.NoError(t, repo.SaveTransaction(context.Background(), &models.Transaction{
		SenderID:   alice.ID,
		ReceiverID: alice.ID,
		Amount:     100,
		Currency:   "EUR",
		Type:       models.TransactionTypePayment,
		Status:     models.TransactionStatusCompleted,
	}))

	balance, err = svc.GetBalance(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", balance.Currency)
	assert.Equal(t, "alice@example.com", balance.Email)
}

func TestGetPaymentDetails_IncludesProcessorStatus(t *testing.T) {
	svc, repo, proc := newTestService(t)
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 0)

	pmt := &models.Payment{
		UserID:    alice.ID,
		Amount:    2500,
		Currency:  "USD",
		Method:    models.PaymentMethodProcessor,
		Reference: "pi_test_1",
		Status:    models.PaymentStatusPending,
	}
	require.NoError(t, repo.SavePayment(context.Background(), pmt))

	proc.status = processor.StatusPending
	details, err := svc.GetPaymentDetails(context.Background(), alice.ID, pmt.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", details.ProcessorStatus)
	assert.Equal(t, int64(2500), details.Amount)
}

func TestGetPaymentDetails_ProcessorFailureFailsCall(t *testing.T) {
	svc, repo, proc := newTestService(t)
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 0)

	pmt := &models.Payment{
		UserID:    alice.ID,
		Amount:    2500,
		Currency:  "USD",
		Method:    models.PaymentMethodProcessor,
		Reference: "pi_test_1",
		Status:    models.PaymentStatusPending,
	}
	require.NoError(t, repo.SavePayment(context.Background(), pmt))

	proc.err = errors.New("processor unavailable")
	_, err := svc.GetPaymentDetails(context.Background(), alice.ID, pmt.ID)
	assert.Error(t, err)
}

func TestGetPaymentDetails_TransferPaymentSkipsProcessor(t *testing.T) {
	svc, repo, proc := newTestService(t)
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 0)

	pmt := &models.Payment{
		UserID:    alice.ID,
		Amount:    1000,
		Currency:  "USD",
		Method:    models.PaymentMethodTransfer,
		Reference: "transfer_abc",
		Status:    models.PaymentStatusCompleted,
	}
	require.NoError(t, repo.SavePayment(context.Background(), pmt))

	proc.err = errors.New("processor unavailable")
	details, err := svc.GetPaymentDetails(context.Background(), alice.ID, pmt.ID)
	require.NoError(t, err)
	assert.Empty(t, details.ProcessorStatus)
}

func TestGetPaymentDetails_ForeignPaymentLooksMissing(t *testing.T) {
	svc, repo, _ := newTestService(t)
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 0)
	bob := seedUser(t, repo, "bob@example.com", "Bob", "Jones", 0)

	pmt := &models.Payment{
		UserID:    alice.ID,
		Amount:    1000,
		Currency:  "USD",
		Method:    models.PaymentMethodProcessor,
		Reference: "pi_test_1",
		Status:    models.PaymentStatusCompleted,
	}
	require.NoError(t, repo.SavePayment(context.Background(), pmt))

	_, err := svc.GetPaymentDetails(context.Background(), bob.ID, pmt.ID)
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}

func TestGetBalance_CachedUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cacheSvc := cache.NewCacheService(client, time.Hour)

	repo := repositories.NewInMemoryLedger()
	svc := NewService(repo, &stubProcessor{}, cacheSvc, logging.Discard())
	alice := seedUser(t, repo, "alice@example.com", "Alice", "Smith", 5000)

	first, err := svc.GetBalance(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), first.Balance)

	// A write bypassing invalidation is served from cache.
	stored, err := repo.GetUser(context.Background(), alice.ID)
	require.NoError(t, err)
	stored.Balance = 9000
	require.NoError(t, repo.SaveUser(context.Background(), stored))

	cached, err := svc.GetBalance(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), cached.Balance)

	// Invalidation, as done by the write path, exposes the new balance.
	require.NoError(t, cacheSvc.InvalidateWallet(context.Background(), alice.ID))
	fresh, err := svc.GetBalance(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), fresh.Balance)
}
