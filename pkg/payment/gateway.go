package payment

import (
	"context"
)

// Intent is the gateway-neutral view of a payment intent.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// StatusSucceeded is the only status accepted as a confirmed payment.
const StatusSucceeded = "succeeded"

// Gateway abstracts the payment processor. Amounts are minor units (cents) of
// the given ISO currency code. The idempotency key guards against
// double-charging when a client retries a timed-out purchase.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency, idempotencyKey string) (*Intent, error)
	ConfirmIntent(ctx context.Context, intentID, paymentMethodID string) (*Intent, error)
}
