// Package payment implements the payment lifecycle: creating processor-backed
// payment intents, verifying settlement (crediting the wallet exactly once)
// and refunding completed payments.
package payment

import "context"

// Service is the payment lifecycle contract.
type Service interface {
	// CreatePayment validates the request, initiates a payment intent with the
	// processor and records a pending Payment. No balance changes here.
	CreatePayment(ctx context.Context, userID uint, req CreatePaymentRequest) (*CreatePaymentResult, error)

	// VerifyPayment checks settlement with the processor and, on first
	// successful verification, credits the wallet and records the transaction
	// atomically. Verifying an already-completed payment is a no-op success.
	VerifyPayment(ctx context.Context, userID uint, reference string) (*VerifyPaymentResult, error)

	// RefundPayment reverses up to the remaining refundable amount of a
	// completed payment, debiting the wallet. The wallet must cover the
	// refund; balances never go negative.
	RefundPayment(ctx context.Context, userID uint, paymentID uint, amount int64) (*RefundPaymentResult, error)
}
