// Package history is the read side of the ledger: transaction history,
// payment details and wallet balance, with Redis-backed caching of the
// balance and history projections.
package history

import "context"

// Service is the query contract.
type Service interface {
	// GetPaymentHistory returns the user's transactions, most recent first,
	// with sender and receiver resolved to minimal profiles.
	GetPaymentHistory(ctx context.Context, userID uint) ([]HistoryEntry, error)

	// GetPaymentDetails returns a payment owned by the user. For
	// processor-backed payments the live processor status is included; a
	// processor failure fails the call rather than returning stale data.
	GetPaymentDetails(ctx context.Context, userID uint, paymentID uint) (*PaymentDetails, error)

	// GetBalance returns the wallet balance with the resolved currency: the
	// currency of the most recent transaction, or the account default when
	// the user has no history.
	GetBalance(ctx context.Context, userID uint) (*BalanceResult, error)
}
