// Package domain contains the subscription model and plan rules.
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Plan string

const (
	PlanBasic Plan = "basic"
	PlanPaid  Plan = "paid"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// PaidPlanDuration is how long one verified payment keeps a plan paid.
const PaidPlanDuration = 30 * 24 * time.Hour

// Subscription is the single live record per user. Paid standing is always
// computed from status and end date at read time, never stored.
type Subscription struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           string             `bson:"userid" json:"userid"`
	Plan             Plan               `bson:"plan" json:"plan"`
	Status           string             `bson:"status" json:"status"`
	StartDate        time.Time          `bson:"start_date" json:"start_date"`
	EndDate          time.Time          `bson:"end_date" json:"end_date"`
	PaymentSessionID string             `bson:"stripe_session_id,omitempty" json:"-"`
	PaymentIntentID  string             `bson:"stripe_payment_intent,omitempty" json:"-"`
	LastVerifiedAt   time.Time          `bson:"last_verified,omitempty" json:"last_verified,omitempty"`
}

// Active reports whether the subscription grants the paid plan at now.
func (s *Subscription) Active(now time.Time) bool {
	return s != nil && s.Status == StatusActive && s.EndDate.After(now)
}

// CheckoutSession is the hosted payment page handed back to the client.
type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"checkout_url"`
}

// StatusInfo is the public plan/usage summary for one user.
type StatusInfo struct {
	Plan           Plan   `json:"plan"`
	Month          string `json:"month"`
	UsageThisMonth int    `json:"usage_this_month"`
}
