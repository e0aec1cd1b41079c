package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/payment"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	subscriptiondomain "github.com/ezahpizza/travel-agent-backend/internal/subscription/domain"
	usagedomain "github.com/ezahpizza/travel-agent-backend/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	repo     subscriptiondomain.Repository
	usage    usagedomain.Repository
	provider payment.Provider
	clock    clock.Clock
	log      *zap.Logger
}

type ServiceParam struct {
	fx.In

	Repo     subscriptiondomain.Repository
	Usage    usagedomain.Repository
	Provider payment.Provider
	Clock    clock.Clock
	Log      *zap.Logger
}

func NewService(p ServiceParam) subscriptiondomain.Service {
	return &Service{
		repo:     p.Repo,
		usage:    p.Usage,
		provider: p.Provider,
		clock:    p.Clock,
		log:      p.Log.Named("subscription.service"),
	}
}

func (s *Service) ResolvePlan(ctx context.Context, userID string) (subscriptiondomain.Plan, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", subscriptiondomain.ErrMissingUser
	}
	sub, err := s.repo.Get(ctx, userID)
	if errors.Is(err, store.ErrNoDocuments) {
		return subscriptiondomain.PlanBasic, nil
	}
	if err != nil {
		return "", err
	}
	if sub.Plan == subscriptiondomain.PlanPaid && sub.Active(s.clock.Now()) {
		return subscriptiondomain.PlanPaid, nil
	}
	return subscriptiondomain.PlanBasic, nil
}

func (s *Service) CreateCheckoutSession(ctx context.Context, userID, successURL, cancelURL string) (subscriptiondomain.CheckoutSession, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return subscriptiondomain.CheckoutSession{}, subscriptiondomain.ErrMissingUser
	}
	if strings.TrimSpace(successURL) == "" || strings.TrimSpace(cancelURL) == "" {
		return subscriptiondomain.CheckoutSession{}, subscriptiondomain.ErrMissingRedirectURL
	}

	session, err := s.provider.CreateCheckoutSession(ctx, payment.CheckoutParams{
		UserID:     userID,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	})
	if err != nil {
		s.log.Error("checkout session creation failed",
			zap.String("userid", userID), zap.Error(err))
		return subscriptiondomain.CheckoutSession{}, fmt.Errorf("%w: %v", subscriptiondomain.ErrPaymentProvider, err)
	}
	s.log.Info("checkout session created",
		zap.String("userid", userID), zap.String("session_id", session.ID))
	return subscriptiondomain.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (s *Service) VerifyPayment(ctx context.Context, userID, sessionID string) (*subscriptiondomain.Subscription, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, subscriptiondomain.ErrMissingUser
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, subscriptiondomain.ErrMissingSessionID
	}

	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		s.log.Warn("payment session retrieval failed",
			zap.String("session_id", sessionID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", subscriptiondomain.ErrVerificationFailed, err)
	}
	if !session.Paid() {
		return nil, subscriptiondomain.ErrVerificationFailed
	}

	now := s.clock.Now()
	sub := &subscriptiondomain.Subscription{
		UserID:           userID,
		Plan:             subscriptiondomain.PlanPaid,
		Status:           subscriptiondomain.StatusActive,
		StartDate:        now,
		EndDate:          now.Add(subscriptiondomain.PaidPlanDuration),
		PaymentSessionID: session.ID,
		PaymentIntentID:  session.PaymentIntent,
		LastVerifiedAt:   now,
	}
	if err := s.repo.Upsert(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("paid plan activated",
		zap.String("userid", userID),
		zap.Time("end_date", sub.EndDate),
	)
	return sub, nil
}

func (s *Service) Status(ctx context.Context, userID string) (subscriptiondomain.StatusInfo, error) {
	plan, err := s.ResolvePlan(ctx, userID)
	if err != nil {
		return subscriptiondomain.StatusInfo{}, err
	}
	month := clock.MonthString(s.clock.Now())
	count, err := s.usage.Count(ctx, userID, month)
	if err != nil {
		return subscriptiondomain.StatusInfo{}, err
	}
	return subscriptiondomain.StatusInfo{
		Plan:           plan,
		Month:          month,
		UsageThisMonth: count,
	}, nil
}
