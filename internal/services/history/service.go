package history

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "ledgerpay/internal/errors"
	"ledgerpay/internal/models"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/repositories/cache"
	"ledgerpay/internal/services/processor"
)

// readCacheTTL keeps read projections short-lived; the write path invalidates
// them anyway, the TTL only bounds staleness if an invalidation is lost.
const readCacheTTL = 5 * time.Minute

type service struct {
	repo      repositories.LedgerRepository
	processor processor.Processor
	cache     *cache.CacheService
	logger    *slog.Logger
}

// NewService creates the history/query service. cacheSvc may be nil.
func NewService(repo repositories.LedgerRepository, proc processor.Processor, cacheSvc *cache.CacheService, logger *slog.Logger) Service {
	return &service{
		repo:      repo,
		processor: proc,
		cache:     cacheSvc,
		logger:    logger,
	}
}

func (s *service) GetPaymentHistory(ctx context.Context, userID uint) ([]HistoryEntry, error) {
	if s.cache != nil {
		var cached []HistoryEntry
		if err := s.cache.Get(ctx, cache.HistoryKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, translateRepoError(err)
	}

	txs, err := s.repo.GetTransactionsForUser(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	entries := make([]HistoryEntry, 0, len(txs))
	for i := range txs {
		entries = append(entries, toHistoryEntry(&txs[i]))
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cache.HistoryKey(userID), entries, readCacheTTL); err != nil {
			s.logger.Warn("failed to cache payment history", "user_id", userID, "error", err)
		}
	}
	return entries, nil
}

func (s *service) GetPaymentDetails(ctx context.Context, userID uint, paymentID uint) (*PaymentDetails, error) {
	pmt, err := s.repo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if pmt.UserID != userID {
		return nil, apperrors.ErrPaymentNotFound
	}

	details := &PaymentDetails{
		PaymentID:      pmt.ID,
		Amount:         pmt.Amount,
		Currency:       pmt.Currency,
		Method:         pmt.Method,
		Reference:      pmt.Reference,
		Status:         pmt.Status,
		RefundedAmount: pmt.RefundedAmount,
		CreatedAt:      pmt.CreatedAt,
		SettledAt:      pmt.SettledAt,
	}

	if pmt.Method == models.PaymentMethodProcessor {
		status, err := s.processor.Retrieve(ctx, pmt.Reference)
		if err != nil {
			return nil, fmt.Errorf("failed to check payment status: %w", err)
		}
		details.ProcessorStatus = string(status)
	}
	return details, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (*BalanceResult, error) {
	if s.cache != nil {
		var cached BalanceResult
		if err := s.cache.Get(ctx, cache.BalanceKey(userID), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	currency := user.Currency
	last, err := s.repo.GetLastTransaction(ctx, userID)
	if err != nil {
		return nil, translateRepoError(err)
	}
	if last != nil {
		currency = last.Currency
	}

	result := &BalanceResult{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Balance:   user.Balance,
		Currency:  currency,
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cache.BalanceKey(userID), result, readCacheTTL); err != nil {
			s.logger.Warn("failed to cache balance", "user_id", userID, "error", err)
		}
	}
	return result, nil
}

func toHistoryEntry(tx *models.Transaction) HistoryEntry {
	entry := HistoryEntry{
		TransactionID: tx.ID,
		PaymentID:     tx.PaymentID,
		Type:          tx.Type,
		Status:        tx.Status,
		Amount:        tx.Amount,
		Currency:      tx.Currency,
		Description:   tx.Description,
		Metadata:      tx.Metadata,
		CreatedAt:     tx.CreatedAt,
	}
	if tx.Sender != nil {
		entry.Sender = toPartyProfile(tx.Sender)
	}
	if tx.Receiver != nil {
		entry.Receiver = toPartyProfile(tx.Receiver)
	}
	return entry
}

func toPartyProfile(user *models.User) PartyProfile {
	return PartyProfile{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrPaymentNotFound):
		return apperrors.ErrPaymentNotFound
	}
	return err
}
