package transfer

// TransferRequest carries the caller-supplied transfer parameters.
type TransferRequest struct {
	ReceiverID uint              `json:"receiver_id" validate:"required"`
	Amount     int64             `json:"amount" validate:"required,gt=0"`
	Currency   string            `json:"currency" validate:"required,len=3,alpha"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// TransferResult reports the committed transfer and both post-transfer
// balances.
type TransferResult struct {
	TransactionID   uint   `json:"transaction_id"`
	PaymentID       uint   `json:"payment_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Description     string `json:"description"`
	SenderBalance   int64  `json:"sender_balance"`
	ReceiverBalance int64  `json:"receiver_balance"`
}
