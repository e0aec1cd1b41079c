// Package payment wraps the checkout backend behind a small interface so the
// subscription service never sees transport details.
package payment

import (
	"context"
	"errors"
)

var (
	// ErrInvalidConfig means the provider is missing an API key or price.
	ErrInvalidConfig = errors.New("payment: invalid config")
	// ErrSessionNotFound means the checkout session id is unknown upstream.
	ErrSessionNotFound = errors.New("payment: session not found")
)

// CheckoutParams describes a hosted checkout session to create.
type CheckoutParams struct {
	UserID     string
	SuccessURL string
	CancelURL  string
}

// Session is the provider's view of a checkout session.
type Session struct {
	ID            string
	URL           string
	PaymentStatus string
	PaymentIntent string
	UserID        string
}

// Paid reports whether the session completed payment.
func (s Session) Paid() bool {
	return s.PaymentStatus == "paid"
}

// Provider creates and retrieves hosted checkout sessions.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (Session, error)
	GetSession(ctx context.Context, sessionID string) (Session, error)
}
