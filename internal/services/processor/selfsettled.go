package processor

import (
	"context"

	"github.com/google/uuid"
)

// SelfSettled simulates a processor that settles every payment immediately.
// Used when no Stripe key is configured so payments complete synchronously on
// verification.
type SelfSettled struct{}

// NewSelfSettled creates the synchronous settlement processor.
func NewSelfSettled() SelfSettled { return SelfSettled{} }

// Initiate approves the payment with a synthetic reference and no client token.
func (SelfSettled) Initiate(_ context.Context, _ int64, _ string, _ map[string]string) (*Intent, error) {
	return &Intent{Reference: "self_" + uuid.NewString()}, nil
}

// Retrieve reports every known reference as settled.
func (SelfSettled) Retrieve(_ context.Context, _ string) (Status, error) {
	return StatusSettled, nil
}

// Refund always succeeds; there is no remote party to compensate.
func (SelfSettled) Refund(_ context.Context, _ string, _ int64) error {
	return nil
}
