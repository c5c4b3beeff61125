package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// DefaultCallTimeout bounds every remote processor call.
const DefaultCallTimeout = 10 * time.Second

// StripeProcessor drives payment intents through the Stripe API.
type StripeProcessor struct {
	api     *client.API
	timeout time.Duration
}

// NewStripe creates a Stripe-backed processor using the given secret key.
func NewStripe(secretKey string, timeout time.Duration) *StripeProcessor {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProcessor{api: api, timeout: timeout}
}

func (p *StripeProcessor) Initiate(ctx context.Context, amount int64, currency string, metadata map[string]string) (*Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	intent, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &Intent{
		Reference:    intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

func (p *StripeProcessor) Retrieve(ctx context.Context, reference string) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	intent, err := p.api.PaymentIntents.Get(reference, params)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return StatusSettled, nil
	case stripe.PaymentIntentStatusCanceled:
		return StatusFailed, nil
	default:
		return StatusPending, nil
	}
}

func (p *StripeProcessor) Refund(ctx context.Context, reference string, amount int64) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(reference),
		Amount:        stripe.Int64(amount),
	}
	params.Context = ctx

	if _, err := p.api.Refunds.New(params); err != nil {
		return fmt.Errorf("failed to refund payment intent: %w", err)
	}
	return nil
}
