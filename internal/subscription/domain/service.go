package domain

import (
	"context"
	"errors"
)

var (
	ErrMissingUser        = errors.New("missing_user")
	ErrMissingRedirectURL = errors.New("missing_redirect_url")
	ErrMissingSessionID   = errors.New("missing_session_id")
	ErrVerificationFailed = errors.New("payment_verification_failed")
	ErrPaymentProvider    = errors.New("payment_provider_failure")
)

type Service interface {
	// ResolvePlan computes the user's effective plan at the current clock.
	ResolvePlan(ctx context.Context, userID string) (Plan, error)
	CreateCheckoutSession(ctx context.Context, userID, successURL, cancelURL string) (CheckoutSession, error)
	VerifyPayment(ctx context.Context, userID, sessionID string) (*Subscription, error)
	Status(ctx context.Context, userID string) (StatusInfo, error)
}

type Repository interface {
	// Get returns the user's subscription or store.ErrNoDocuments.
	Get(ctx context.Context, userID string) (*Subscription, error)
	Upsert(ctx context.Context, sub *Subscription) error
}
