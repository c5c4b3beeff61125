package history

import "time"

// PartyProfile is the minimal identity attached to each side of a
// transaction.
type PartyProfile struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// HistoryEntry is one transaction as seen in the payment history.
type HistoryEntry struct {
	TransactionID uint              `json:"transaction_id"`
	PaymentID     uint              `json:"payment_id,omitempty"`
	Type          string            `json:"type"`
	Status        string            `json:"status"`
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Description   string            `json:"description"`
	Sender        PartyProfile      `json:"sender"`
	Receiver      PartyProfile      `json:"receiver"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
}

// PaymentDetails is the detailed view of one payment.
type PaymentDetails struct {
	PaymentID       uint       `json:"payment_id"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	Method          string     `json:"method"`
	Reference       string     `json:"reference"`
	Status          string     `json:"status"`
	RefundedAmount  int64      `json:"refunded_amount"`
	ProcessorStatus string     `json:"processor_status,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
}

// BalanceResult is the wallet balance with the resolved currency.
type BalanceResult struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
}
