package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	paymentprovider "github.com/ezahpizza/travel-agent-backend/internal/providers/payment"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	subscriptiondomain "github.com/ezahpizza/travel-agent-backend/internal/subscription/domain"
	subscriptionrepo "github.com/ezahpizza/travel-agent-backend/internal/subscription/repository"
	usagerepo "github.com/ezahpizza/travel-agent-backend/internal/usage/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubProvider scripts the session lookups per id.
type stubProvider struct {
	sessions map[string]paymentprovider.Session
	err      error
}

func (p *stubProvider) CreateCheckoutSession(ctx context.Context, params paymentprovider.CheckoutParams) (paymentprovider.Session, error) {
	if p.err != nil {
		return paymentprovider.Session{}, p.err
	}
	return paymentprovider.Session{ID: "cs_new", URL: "https://checkout.test/cs_new", UserID: params.UserID}, nil
}

func (p *stubProvider) GetSession(ctx context.Context, sessionID string) (paymentprovider.Session, error) {
	if p.err != nil {
		return paymentprovider.Session{}, p.err
	}
	session, ok := p.sessions[sessionID]
	if !ok {
		return paymentprovider.Session{}, paymentprovider.ErrSessionNotFound
	}
	return session, nil
}

func newService(t *testing.T, provider paymentprovider.Provider) (subscriptiondomain.Service, *clock.FakeClock) {
	t.Helper()
	mem := store.NewMemory()
	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(ServiceParam{
		Repo:     subscriptionrepo.Provide(mem),
		Usage:    usagerepo.Provide(mem),
		Provider: provider,
		Clock:    fc,
		Log:      zap.NewNop(),
	})
	return svc, fc
}

func TestResolvePlanDefaultsToBasic(t *testing.T) {
	svc, _ := newService(t, &stubProvider{})

	plan, err := svc.ResolvePlan(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, subscriptiondomain.PlanBasic, plan)

	_, err = svc.ResolvePlan(context.Background(), "")
	require.ErrorIs(t, err, subscriptiondomain.ErrMissingUser)
}

func TestVerifyPaymentActivatesPaidPlan(t *testing.T) {
	provider := &stubProvider{sessions: map[string]paymentprovider.Session{
		"cs_paid": {ID: "cs_paid", PaymentStatus: "paid", PaymentIntent: "pi_1"},
	}}
	svc, fc := newService(t, provider)
	ctx := context.Background()

	sub, err := svc.VerifyPayment(ctx, "user-1", "cs_paid")
	require.NoError(t, err)
	require.Equal(t, subscriptiondomain.PlanPaid, sub.Plan)
	require.Equal(t, subscriptiondomain.StatusActive, sub.Status)
	require.Equal(t, fc.Now().Add(subscriptiondomain.PaidPlanDuration), sub.EndDate)

	plan, err := svc.ResolvePlan(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, subscriptiondomain.PlanPaid, plan)

	// Plan standing is computed at read time, so expiry needs no write.
	fc.Advance(subscriptiondomain.PaidPlanDuration + time.Minute)
	plan, err = svc.ResolvePlan(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, subscriptiondomain.PlanBasic, plan)
}

func TestVerifyPaymentRejectsUnpaidSession(t *testing.T) {
	provider := &stubProvider{sessions: map[string]paymentprovider.Session{
		"cs_open": {ID: "cs_open", PaymentStatus: "unpaid"},
	}}
	svc, _ := newService(t, provider)
	ctx := context.Background()

	_, err := svc.VerifyPayment(ctx, "user-1", "cs_open")
	require.ErrorIs(t, err, subscriptiondomain.ErrVerificationFailed)

	_, err = svc.VerifyPayment(ctx, "user-1", "cs_unknown")
	require.ErrorIs(t, err, subscriptiondomain.ErrVerificationFailed)

	_, err = svc.VerifyPayment(ctx, "user-1", "")
	require.ErrorIs(t, err, subscriptiondomain.ErrMissingSessionID)

	plan, err := svc.ResolvePlan(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, subscriptiondomain.PlanBasic, plan, "failed verification must not change the plan")
}

func TestRepeatedVerificationKeepsOneRecord(t *testing.T) {
	provider := &stubProvider{sessions: map[string]paymentprovider.Session{
		"cs_paid": {ID: "cs_paid", PaymentStatus: "paid"},
	}}
	svc, fc := newService(t, provider)
	ctx := context.Background()

	first, err := svc.VerifyPayment(ctx, "user-1", "cs_paid")
	require.NoError(t, err)

	fc.Advance(24 * time.Hour)
	second, err := svc.VerifyPayment(ctx, "user-1", "cs_paid")
	require.NoError(t, err)
	require.True(t, second.EndDate.After(first.EndDate), "re-verification extends from the new clock")

	status, err := svc.Status(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, subscriptiondomain.PlanPaid, status.Plan)
	require.Zero(t, status.UsageThisMonth)
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	svc, _ := newService(t, &stubProvider{})
	ctx := context.Background()

	_, err := svc.CreateCheckoutSession(ctx, "", "https://ok", "https://ok")
	require.ErrorIs(t, err, subscriptiondomain.ErrMissingUser)

	_, err = svc.CreateCheckoutSession(ctx, "user-1", "", "https://ok")
	require.ErrorIs(t, err, subscriptiondomain.ErrMissingRedirectURL)

	session, err := svc.CreateCheckoutSession(ctx, "user-1", "https://ok/success", "https://ok/cancel")
	require.NoError(t, err)
	require.Equal(t, "cs_new", session.ID)
	require.NotEmpty(t, session.URL)
}

func TestCreateCheckoutSessionProviderFailure(t *testing.T) {
	svc, _ := newService(t, &stubProvider{err: errors.New("stripe down")})

	_, err := svc.CreateCheckoutSession(context.Background(), "user-1", "https://ok/s", "https://ok/c")
	require.ErrorIs(t, err, subscriptiondomain.ErrPaymentProvider)
}
