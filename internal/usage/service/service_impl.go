package service

import (
	"context"
	"strings"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	"github.com/ezahpizza/travel-agent-backend/internal/config"
	obsmetrics "github.com/ezahpizza/travel-agent-backend/internal/observability/metrics"
	subscriptiondomain "github.com/ezahpizza/travel-agent-backend/internal/subscription/domain"
	usagedomain "github.com/ezahpizza/travel-agent-backend/internal/usage/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	repo    usagedomain.Repository
	plans   subscriptiondomain.Service
	clock   clock.Clock
	log     *zap.Logger
	metrics *obsmetrics.HTTPMetrics
	ceiling int
}

type ServiceParam struct {
	fx.In

	Cfg     config.Config
	Repo    usagedomain.Repository
	Plans   subscriptiondomain.Service
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewService(p ServiceParam) usagedomain.Service {
	ceiling := p.Cfg.BasicMonthlyLimit
	if ceiling <= 0 {
		ceiling = usagedomain.DefaultMonthlyLimit
	}
	return &Service{
		repo:    p.Repo,
		plans:   p.Plans,
		clock:   p.Clock,
		log:     p.Log.Named("usage.service"),
		metrics: p.Metrics,
		ceiling: ceiling,
	}
}

func (s *Service) CheckAndConsume(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return usagedomain.ErrMissingUser
	}

	plan, err := s.plans.ResolvePlan(ctx, userID)
	if err != nil {
		return err
	}
	if plan == subscriptiondomain.PlanPaid {
		return nil
	}

	month := clock.MonthString(s.clock.Now())
	allowed, err := s.repo.IncrementIfBelow(ctx, userID, month, s.ceiling)
	if err != nil {
		return err
	}
	if !allowed {
		s.metrics.RecordQuotaDenied()
		s.log.Info("monthly quota exhausted",
			zap.String("userid", userID),
			zap.String("month", month),
			zap.Int("ceiling", s.ceiling),
		)
		return usagedomain.ErrQuotaExceeded
	}
	return nil
}

func (s *Service) CountThisMonth(ctx context.Context, userID string) (int, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return 0, usagedomain.ErrMissingUser
	}
	return s.repo.Count(ctx, userID, clock.MonthString(s.clock.Now()))
}
