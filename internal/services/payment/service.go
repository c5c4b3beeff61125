package payment

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
	"ledgerpay/internal/services/processor"
)

const descAddedFunds = "Added funds to wallet"

type service struct {
	repo      repositories.LedgerRepository
	processor processor.Processor
	cache     *cache.CacheService
	metrics   metrics.Collector
	logger    *slog.Logger
}

// NewService creates the payment lifecycle service. cacheSvc may be nil; the
// cache is an accelerator for the read side, not a dependency.
func NewService(repo repositories.LedgerRepository, proc processor.Processor, cacheSvc *cache.CacheService, collector metrics.Collector, logger *slog.Logger) Service {
	if collector == nil {
		collector = metrics.NoopCollector{}
	}
	return &service{
		repo:      repo,
		processor: proc,
		cache:     cacheSvc,
		metrics:   collector,
		logger:    logger,
	}
}

func (s *service) invalidateWallet(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate wallet cache", "user_id", userID, "error", err)
	}
}

func (s *service) CreatePayment(ctx context.Context, userID uint, req CreatePaymentRequest) (*CreatePaymentResult, error) {
	defer s.observe("create", time.Now())

	if req.Amount <= 0 {
		s.metrics.IncPayments("create", "error")
		return nil, apperrors.ErrInvalidAmount
	}
	currency := strings.ToUpper(req.Currency)

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		s.metrics.IncPayments("create", "error")
		return nil, translateRepoError(err)
	}

	established, ok, err := establishedCurrency(ctx, s.repo, user.ID)
	if err != nil {
		s.metrics.IncPayments("create", "error")
		return nil, err
	}
	if ok && established != currency {
		s.metrics.IncPayments("create", "error")
		return nil, apperrors.ErrCurrencyMismatch.WithMessage(
			"Currency mismatch. Your wallet is in %s. Please use the same currency.", established)
	}

	intent, err := s.processor.Initiate(ctx, req.Amount, currency, req.Metadata)
	if err != nil {
		s.metrics.IncPayments("create", "error")
		return nil, fmt.Errorf("failed to initiate payment: %w", err)
	}

	pmt := &models.Payment{
		UserID:       user.ID,
		Amount:       req.Amount,
		Currency:     currency,
		Method:       models.PaymentMethodProcessor,
		Reference:    intent.Reference,
		ClientSecret: intent.ClientSecret,
		Status:       models.PaymentStatusPending,
	}
	// The currency re-check and the insert share one storage transaction so a
	// concurrent first transaction cannot establish a different currency in
	// between.
	err = s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		established, ok, err := establishedCurrency(ctx, tx, user.ID)
		if err != nil {
			return err
		}
		if ok && established != currency {
			return apperrors.ErrCurrencyMismatch.WithMessage(
				"Currency mismatch. Your wallet is in %s. Please use the same currency.", established)
		}
		return tx.SavePayment(ctx, pmt)
	})
	if err != nil {
		s.metrics.IncPayments("create", "error")
		return nil, translateRepoError(err)
	}

	s.logger.Info("payment created",
		"user_id", user.ID,
		"payment_id", pmt.ID,
		"amount", pmt.Amount,
		"currency", pmt.Currency,
	)
	s.metrics.IncPayments("create", "ok")

	return &CreatePaymentResult{
		PaymentID:    pmt.ID,
		Reference:    pmt.Reference,
		ClientSecret: pmt.ClientSecret,
		Amount:       pmt.Amount,
		Currency:     pmt.Currency,
		Status:       pmt.Status,
	}, nil
}

func (s *service) VerifyPayment(ctx context.Context, userID uint, reference string) (*VerifyPaymentResult, error) {
	defer s.observe("verify", time.Now())

	pmt, err := s.repo.GetPaymentByReference(ctx, reference)
	if err != nil {
		s.metrics.IncPayments("verify", "error")
		return nil, translateRepoError(err)
	}
	// Ownership is not leaked: a foreign reference looks like a missing one.
	if pmt.UserID != userID {
		s.metrics.IncPayments("verify", "error")
		return nil, apperrors.ErrPaymentNotFound
	}

	switch pmt.Status {
	case models.PaymentStatusCompleted:
		user, err := s.repo.GetUser(ctx, pmt.UserID)
		if err != nil {
			return nil, translateRepoError(err)
		}
		s.metrics.IncPayments("verify", "ok")
		return &VerifyPaymentResult{
			PaymentID: pmt.ID,
			Status:    pmt.Status,
			Verified:  true,
			Balance:   user.Balance,
			Currency:  user.Currency,
		}, nil
	case models.PaymentStatusRefunded:
		s.metrics.IncPayments("verify", "error")
		return nil, apperrors.ErrInvalidPaymentState.WithMessage("payment has already been refunded")
	case models.PaymentStatusFailed:
		s.metrics.IncPayments("verify", "error")
		return nil, apperrors.ErrVerificationFailed.WithMessage("payment has failed and cannot settle")
	}

	status, err := s.processor.Retrieve(ctx, pmt.Reference)
	if err != nil {
		s.metrics.IncPayments("verify", "error")
		return nil, apperrors.ErrVerificationFailed.WithMessage("failed to check payment status: %v", err)
	}

	switch status {
	case processor.StatusPending:
		// Not settled yet is a successful answer, not an error. No writes.
		user, err := s.repo.GetUser(ctx, pmt.UserID)
		if err != nil {
			return nil, translateRepoError(err)
		}
		s.metrics.IncPayments("verify", "pending")
		return &VerifyPaymentResult{
			PaymentID: pmt.ID,
			Status:    pmt.Status,
			Verified:  false,
			Balance:   user.Balance,
			Currency:  user.Currency,
		}, nil
	case processor.StatusFailed:
		pmt.Status = models.PaymentStatusFailed
		if err := s.repo.SavePayment(ctx, pmt); err != nil {
			return nil, translateRepoError(err)
		}
		s.logger.Warn("payment failed at processor", "payment_id", pmt.ID, "reference", pmt.Reference)
		s.metrics.IncPayments("verify", "error")
		return nil, apperrors.ErrVerificationFailed
	}

	var result *VerifyPaymentResult
	err = s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		p, err := tx.GetPaymentByReference(ctx, reference)
		if err != nil {
			return err
		}
		// A concurrent verification may have settled it first; the credit
		// must happen exactly once.
		if p.Status == models.PaymentStatusCompleted {
			user, err := tx.GetUser(ctx, p.UserID)
			if err != nil {
				return err
			}
			result = &VerifyPaymentResult{
				PaymentID: p.ID,
				Status:    p.Status,
				Verified:  true,
				Balance:   user.Balance,
				Currency:  user.Currency,
			}
			return nil
		}
		if p.Status != models.PaymentStatusPending {
			return apperrors.ErrInvalidPaymentState
		}

		user, err := tx.GetUserForUpdate(ctx, p.UserID)
		if err != nil {
			return err
		}
		user.Balance += p.Amount
		user.Currency = p.Currency
		if err := tx.SaveUser(ctx, user); err != nil {
			return err
		}

		now := time.Now().UTC()
		p.Status = models.PaymentStatusCompleted
		p.SettledAt = &now
		if err := tx.SavePayment(ctx, p); err != nil {
			return err
		}

		record := &models.Transaction{
			PaymentID:   p.ID,
			SenderID:    user.ID,
			ReceiverID:  user.ID,
			Amount:      p.Amount,
			Currency:    p.Currency,
			Type:        models.TransactionTypePayment,
			Status:      models.TransactionStatusCompleted,
			Description: descAddedFunds,
		}
		if err := tx.SaveTransaction(ctx, record); err != nil {
			return err
		}

		result = &VerifyPaymentResult{
			PaymentID: p.ID,
			Status:    p.Status,
			Verified:  true,
			Balance:   user.Balance,
			Currency:  user.Currency,
		}
		return nil
	})
	if err != nil {
		s.metrics.IncPayments("verify", "error")
		return nil, translateRepoError(err)
	}

	s.invalidateWallet(ctx, userID)
	s.logger.Info("payment verified",
		"user_id", userID,
		"payment_id", result.PaymentID,
		"balance", result.Balance,
	)
	s.metrics.IncPayments("verify", "ok")
	return result, nil
}

func (s *service) RefundPayment(ctx context.Context, userID uint, paymentID uint, amount int64) (*RefundPaymentResult, error) {
	defer s.observe("refund", time.Now())

	if amount <= 0 {
		s.metrics.IncPayments("refund", "error")
		return nil, apperrors.ErrInvalidAmount
	}

	pmt, err := s.repo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		s.metrics.IncPayments("refund", "error")
		return nil, translateRepoError(err)
	}
	if pmt.UserID != userID {
		s.metrics.IncPayments("refund", "error")
		return nil, apperrors.ErrPaymentNotFound
	}
	if pmt.Status != models.PaymentStatusCompleted {
		s.metrics.IncPayments("refund", "error")
		return nil, apperrors.ErrInvalidPaymentState
	}
	if remaining := pmt.Amount - pmt.RefundedAmount; amount > remaining {
		s.metrics.IncPayments("refund", "error")
		return nil, apperrors.ErrInvalidAmount.WithMessage(
			"refund exceeds the refundable amount of %s %s",
			models.FormatAmount(remaining), pmt.Currency)
	}

	user, err := s.repo.GetUser(ctx, pmt.UserID)
	if err != nil {
		s.metrics.IncPayments("refund", "error")
		return nil, translateRepoError(err)
	}
	if user.Balance < amount {
		s.metrics.IncPayments("refund", "error")
		return nil, apperrors.ErrInsufficientFunds.WithMessage(
			"Insufficient funds. Your balance is %s %s",
			models.FormatAmount(user.Balance), user.Currency)
	}

	if pmt.Method == models.PaymentMethodProcessor {
		if err := s.processor.Refund(ctx, pmt.Reference, amount); err != nil {
			s.metrics.IncPayments("refund", "error")
			return nil, fmt.Errorf("failed to refund payment: %w", err)
		}
	}

	var result *RefundPaymentResult
	err = s.repo.ExecuteInTransaction(ctx, func(tx repositories.LedgerRepository) error {
		p, err := tx.GetPaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if p.Status != models.PaymentStatusCompleted {
			return apperrors.ErrInvalidPaymentState
		}
		if amount > p.Amount-p.RefundedAmount {
			return apperrors.ErrInvalidAmount.WithMessage(
				"refund exceeds the refundable amount of %s %s",
				models.FormatAmount(p.Amount-p.RefundedAmount), p.Currency)
		}

		u, err := tx.GetUserForUpdate(ctx, p.UserID)
		if err != nil {
			return err
		}
		if u.Balance < amount {
			return apperrors.ErrInsufficientFunds.WithMessage(
				"Insufficient funds. Your balance is %s %s",
				models.FormatAmount(u.Balance), u.Currency)
		}
		u.Balance -= amount
		if err := tx.SaveUser(ctx, u); err != nil {
			return err
		}

		p.RefundedAmount += amount
		if p.RefundedAmount == p.Amount {
			p.Status = models.PaymentStatusRefunded
		}
		if err := tx.SavePayment(ctx, p); err != nil {
			return err
		}

		record := &models.Transaction{
			PaymentID:   p.ID,
			SenderID:    u.ID,
			ReceiverID:  u.ID,
			Amount:      amount,
			Currency:    p.Currency,
			Type:        models.TransactionTypeRefund,
			Status:      models.TransactionStatusCompleted,
			Description: fmt.Sprintf("Refund for payment #%d", p.ID),
		}
		if err := tx.SaveTransaction(ctx, record); err != nil {
			return err
		}

		result = &RefundPaymentResult{
			PaymentID:      p.ID,
			RefundedAmount: p.RefundedAmount,
			Status:         p.Status,
			Balance:        u.Balance,
			Currency:       u.Currency,
		}
		return nil
	})
	if err != nil {
		s.metrics.IncPayments("refund", "error")
		return nil, translateRepoError(err)
	}

	s.invalidateWallet(ctx, userID)
	s.logger.Info("payment refunded",
		"user_id", userID,
		"payment_id", result.PaymentID,
		"amount", amount,
		"balance", result.Balance,
	)
	s.metrics.IncPayments("refund", "ok")
	return result, nil
}

// establishedCurrency returns the wallet's currency as defined by the user's
// most recent transaction. Users with no transaction history have no
// established currency yet and may fund in any currency.
func establishedCurrency(ctx context.Context, repo repositories.LedgerRepository, userID uint) (string, bool, error) {
	last, err := repo.GetLastTransaction(ctx, userID)
	if err != nil {
		return "", false, translateRepoError(err)
	}
	if last == nil {
		return "", false, nil
	}
	return last.Currency, true, nil
}

func (s *service) observe(operation string, start time.Time) {
	s.metrics.ObserveOperationDuration(operation, time.Since(start).Seconds())
}

func translateRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.ErrUserNotFound
	case errors.Is(err, repositories.ErrPaymentNotFound):
		return apperrors.ErrPaymentNotFound
	case errors.Is(err, repositories.ErrConflict):
		return apperrors.ErrPersistenceConflict
	}
	return err
}
