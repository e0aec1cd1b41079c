package service

import (
	"context"
	"testing"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	"github.com/ezahpizza/travel-agent-backend/internal/config"
	paymentprovider "github.com/ezahpizza/travel-agent-backend/internal/providers/payment"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	subscriptiondomain "github.com/ezahpizza/travel-agent-backend/internal/subscription/domain"
	subscriptionrepo "github.com/ezahpizza/travel-agent-backend/internal/subscription/repository"
	subscriptionservice "github.com/ezahpizza/travel-agent-backend/internal/subscription/service"
	usagedomain "github.com/ezahpizza/travel-agent-backend/internal/usage/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/usage/repository"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// paidSessions reports every session id as paid.
type paidSessions struct{}

func (paidSessions) CreateCheckoutSession(ctx context.Context, params paymentprovider.CheckoutParams) (paymentprovider.Session, error) {
	return paymentprovider.Session{ID: "cs_test", URL: "https://checkout.test/cs_test"}, nil
}

func (paidSessions) GetSession(ctx context.Context, sessionID string) (paymentprovider.Session, error) {
	return paymentprovider.Session{ID: sessionID, PaymentStatus: "paid", PaymentIntent: "pi_test"}, nil
}

type fixture struct {
	usage usagedomain.Service
	subs  subscriptiondomain.Service
	clock *clock.FakeClock
}

func newFixture(t *testing.T, ceiling int) *fixture {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, mem.EnsureIndex(context.Background(), store.CollectionUsage,
		bson.D{{Key: "userid", Value: 1}, {Key: "month", Value: 1}}, true))

	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	usageRepo := repository.Provide(mem)
	subs := subscriptionservice.NewService(subscriptionservice.ServiceParam{
		Repo:     subscriptionrepo.Provide(mem),
		Usage:    usageRepo,
		Provider: paidSessions{},
		Clock:    fc,
		Log:      zap.NewNop(),
	})
	usage := NewService(ServiceParam{
		Cfg:   config.Config{BasicMonthlyLimit: ceiling},
		Repo:  usageRepo,
		Plans: subs,
		Clock: fc,
		Log:   zap.NewNop(),
	})
	return &fixture{usage: usage, subs: subs, clock: fc}
}

func TestCheckAndConsumeEnforcesCeiling(t *testing.T) {
	f := newFixture(t, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))
	}
	require.ErrorIs(t, f.usage.CheckAndConsume(ctx, "user-1"), usagedomain.ErrQuotaExceeded)

	count, err := f.usage.CountThisMonth(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 3, count, "denied attempts must not consume quota")
}

func TestCheckAndConsumeMissingUser(t *testing.T) {
	f := newFixture(t, 3)
	err := f.usage.CheckAndConsume(context.Background(), "  ")
	require.ErrorIs(t, err, usagedomain.ErrMissingUser)
}

func TestQuotaIsolatedAcrossUsersAndMonths(t *testing.T) {
	f := newFixture(t, 2)
	ctx := context.Background()

	require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))
	require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))
	require.ErrorIs(t, f.usage.CheckAndConsume(ctx, "user-1"), usagedomain.ErrQuotaExceeded)

	// Another user is unaffected.
	require.NoError(t, f.usage.CheckAndConsume(ctx, "user-2"))

	// The next calendar month starts a fresh counter.
	f.clock.Advance(31 * 24 * time.Hour)
	require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))
	count, err := f.usage.CountThisMonth(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestPaidPlanBypassesQuota(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))
	require.ErrorIs(t, f.usage.CheckAndConsume(ctx, "user-1"), usagedomain.ErrQuotaExceeded)

	_, err := f.subs.VerifyPayment(ctx, "user-1", "cs_test")
	require.NoError(t, err)

	// Paid users pass without consuming.
	for i := 0; i < 5; i++ {
		require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))
	}
	count, err := f.usage.CountThisMonth(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestExpiredPlanFallsBackToMetering(t *testing.T) {
	f := newFixture(t, 1)
	ctx := context.Background()

	_, err := f.subs.VerifyPayment(ctx, "user-1", "cs_test")
	require.NoError(t, err)
	require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))

	// Thirty-one days later the paid window has lapsed.
	f.clock.Advance(31 * 24 * time.Hour)
	require.NoError(t, f.usage.CheckAndConsume(ctx, "user-1"))
	require.ErrorIs(t, f.usage.CheckAndConsume(ctx, "user-1"), usagedomain.ErrQuotaExceeded)
}
