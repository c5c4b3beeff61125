// Package processor abstracts the external payment processor. The service
// runs either against Stripe or, when no processor is configured, against a
// self-settled implementation that treats every payment as immediately
// settled.
package processor

import "context"

// Status is the processor-side settlement state of a payment intent.
type Status string

const (
	StatusSettled Status = "settled"
	StatusPending Status = "pending"
	StatusFailed  Status = "failed"
)

// Intent is the processor handle for a newly initiated payment.
type Intent struct {
	// Reference identifies the intent on the processor side and is stored on
	// the Payment row.
	Reference string
	// ClientSecret is the client-side token used to confirm the intent.
	// Empty in self-settled mode.
	ClientSecret string
}

// Processor is the contract for the external payment processor.
type Processor interface {
	Initiate(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error)
	Retrieve(ctx context.Context, reference string) (Status, error)
	Refund(ctx context.Context, reference string, amount int64) error
}
