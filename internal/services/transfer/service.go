package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "ledgerpay/internal/errors"
	"ledgerpay/internal/metrics"
	"ledgerpay/internal/models"
	"ledgerpay/internal/repositories"
	"ledgerpay/internal/repositories/cache"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.LedgerRepository
	cache   *cache.CacheService
	metrics metrics.Collector
	logger  *slog.Logger
}

// NewService creates the transfer engine. cacheSvc may be nil.
func NewService(repo repositories.LedgerRepository, cacheSvc *cache.CacheService, collector metrics.Collector, logger *slog.Logger) Service {
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	return &service{
		repo:    repo,
		cache:   cacheSvc,
		metrics: collector,
		logger:  logger,
	}
}

func (s *service) TransferFunds(ctx context.Context, senderID uint, req TransferRequest) (*TransferResult, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveOperationDuration("transfer", time.Since(start).Seconds())
	}()

	if senderID == req.ReceiverID {
		s.metrics.IncTransfers("error")
		return nil, apperrors.ErrSelfTransfer
	}
	if req.Amount <= 0 {
		s.metrics.IncTransfers("error")
		return nil, apperrors.ErrInvalidAmount
	}
	currency := strings.ToUpper(req.Currency)

	var result *TransferResult
	err := s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		// Lock both rows in ascending ID order so concurrent opposite-direction
		// transfers cannot deadlock.
		sender, receiver, err := lockPair(ctx, tx, senderID, req.ReceiverID)
		if err != nil {
			return err
		}

		mismatch, wallet, err := currencyMismatch(ctx, tx, sender, currency)
		if err != nil {
			return err
		}
		if mismatch {
			return apperrors.ErrCurrencyMismatch.WithMessage(
				"Currency mismatch. Your wallet is in %s. Please use the same currency.", wallet)
		}
		mismatch, wallet, err = currencyMismatch(ctx, tx, receiver, currency)
		if err != nil {
			return err
		}
		if mismatch {
			return apperrors.ErrCurrencyMismatch.WithMessage(
				"Currency mismatch. The recipient's wallet is in %s.", wallet)
		}

		if sender.Balance < req.Amount {
			return apperrors.ErrInsufficientFunds.WithMessage(
				"Insufficient funds. Your balance is %s %s",
				models.FormatAmount(sender.Balance), currency)
		}

		sender.Balance -= req.Amount
		receiver.Balance += req.Amount
		sender.Currency = currency
		receiver.Currency = currency
		if err := tx.SaveUser(ctx, sender); err != nil {
			return err
		}
		if err := tx.SaveUser(ctx, receiver); err != nil {
			return err
		}

		pmt := &models.Payment{
			UserID:    sender.ID,
			Amount:    req.Amount,
			Currency:  currency,
			Method:    models.PaymentMethodTransfer,
			Reference: "transfer_" + uuid.NewString(),
			Status:    models.PaymentStatusCompleted,
		}
		if err := tx.SavePayment(ctx, pmt); err != nil {
			return err
		}

		record := &models.Transaction{
			PaymentID:   pmt.ID,
			SenderID:    sender.ID,
			ReceiverID:  receiver.ID,
			Amount:      req.Amount,
			Currency:    currency,
			Type:        models.TransactionTypeTransfer,
			Status:      models.TransactionStatusCompleted,
			Description: fmt.Sprintf("Transfer to %s", receiver.FullName()),
			Metadata:    req.Metadata,
		}
		if err := tx.SaveTransaction(ctx, record); err != nil {
			return err
		}

		result = &TransferResult{
			TransactionID:   record.ID,
			PaymentID:       pmt.ID,
			Amount:          req.Amount,
			Currency:        currency,
			Description:     record.Description,
			SenderBalance:   sender.Balance,
			ReceiverBalance: receiver.Balance,
		}
		return nil
	})
	if err != nil {
		s.metrics.IncTransfers("error")
		return nil, translateRepoError(err)
	}

	s.invalidateWallets(ctx, senderID, req.ReceiverID)
	s.logger.Info("transfer completed",
		"sender_id", senderID,
		"receiver_id", req.ReceiverID,
		"amount", req.Amount,
		"currency", currency,
		"transaction_id", result.TransactionID,
	)
	s.metrics.IncTransfers("ok")
	return result, nil
}

func (s *service) invalidateWallets(ctx context.Context, userIDs ...uint) {
	if s.cache == nil {
		return
	}
	for _, id := range userIDs {
		if err := s.cache.InvalidateWallet(ctx, id); err != nil {
			s.logger.Warn("failed to invalidate wallet cache", "user_id", id, "error", err)
		}
	}
}

func lockPair(ctx context.Context, tx repositories.LedgerRepository, senderID, receiverID uint) (sender, receiver *models.User, err error) {
	firstID, secondID := senderID, receiverID
	if receiverID < senderID {
		firstID, secondID = receiverID, senderID
	}

	first, err := tx.GetUserForUpdate(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := tx.GetUserForUpdate(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if first.ID == senderID {
		return first, second, nil
	}
	return second, first, nil
}

// currencyMismatch reports whether the user's established currency (set by
// their most recent transaction) differs from the requested one. Users with no
// history have no established currency. A failed history read aborts the
// transfer rather than passing the check.
func currencyMismatch(ctx context.Context, tx repositories.LedgerRepository, user *models.User, currency string) (bool, string, error) {
	last, err := tx.GetLastTransaction(ctx, user.ID)
	if err != nil {
		return false, "", fmt.Errorf("failed to resolve wallet currency: %w", err)
	}
	if last == nil {
		return false, "", nil
	}
	return last.Currency != currency, last.Currency, nil
}

func translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrConflict):
		return apperrors.ErrPersistenceConflict
	}
	return err
}
