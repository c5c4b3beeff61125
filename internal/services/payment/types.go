package payment

// CreatePaymentRequest carries the caller-supplied payment parameters.
// Amount is in minor units of Currency.
type CreatePaymentRequest struct {
	Amount   int64             `json:"amount" validate:"required,gt=0"`
	Currency string            `json:"currency" validate:"required,len=3,alpha"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreatePaymentResult describes the pending payment handed back to the client
// for confirmation.
type CreatePaymentResult struct {
	PaymentID    uint   `json:"payment_id"`
	Reference    string `json:"reference"`
	ClientSecret string `json:"client_secret,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// VerifyPaymentResult reports the post-verification payment state and wallet
// balance. Verified is false when the processor has not settled the payment
// yet; that outcome is a successful call, not an error.
type VerifyPaymentResult struct {
	PaymentID uint   `json:"payment_id"`
	Status    string `json:"status"`
	Verified  bool   `json:"verified"`
	Balance   int64  `json:"balance"`
	Currency  string `json:"currency"`
}

// RefundPaymentResult reports the refund outcome.
type RefundPaymentResult struct {
	PaymentID      uint   `json:"payment_id"`
	RefundedAmount int64  `json:"refunded_amount"`
	Status         string `json:"status"`
	Balance        int64  `json:"balance"`
	Currency       string `json:"currency"`
}
