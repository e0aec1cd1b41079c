package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	hoteldomain "github.com/ezahpizza/travel-agent-backend/internal/hotel/domain"
	obsmetrics "github.com/ezahpizza/travel-agent-backend/internal/observability/metrics"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

type Service struct {
	repo    hoteldomain.Repository
	agent   agent.Agent
	clock   clock.Clock
	log     *zap.Logger
	metrics *obsmetrics.HTTPMetrics
}

type ServiceParam struct {
	fx.In

	Repo    hoteldomain.Repository
	Agent   agent.Agent
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewService(p ServiceParam) hoteldomain.Service {
	return &Service{
		repo:    p.Repo,
		agent:   p.Agent,
		clock:   p.Clock,
		log:     p.Log.Named("hotel.service"),
		metrics: p.Metrics,
	}
}

func (s *Service) Search(ctx context.Context, req hoteldomain.SearchRequest) (hoteldomain.SearchResult, error) {
	req.Destination = titleCaser.String(strings.TrimSpace(req.Destination))
	if req.Destination == "" {
		return hoteldomain.SearchResult{}, hoteldomain.ErrMissingDestination
	}

	now := s.clock.Now()
	cached, err := s.repo.FindFresh(ctx, req, now.Add(-hoteldomain.CacheWindow))
	if err == nil {
		s.metrics.RecordCacheHit("hotel")
		s.log.Info("returning cached hotel and restaurant results",
			zap.String("destination", req.Destination))
		return hoteldomain.SearchResult{
			Hotels:      cached.Hotels,
			Restaurants: cached.Restaurants,
			Cached:      true,
		}, nil
	}
	if !errors.Is(err, store.ErrNoDocuments) {
		s.log.Warn("hotel cache lookup failed", zap.Error(err))
	}
	s.metrics.RecordCacheMiss("hotel")

	content, err := s.agent.Run(ctx, buildSearchPrompt(req))
	if err != nil {
		s.log.Error("hotel agent call failed", zap.Error(err))
		return hoteldomain.SearchResult{}, fmt.Errorf("%w: %v", hoteldomain.ErrAgentFailure, err)
	}

	hotels, restaurants := textparse.HotelsRestaurants(content)
	if len(hotels) == 0 && len(restaurants) == 0 {
		s.log.Info("no recommendations parsed from agent response",
			zap.String("destination", req.Destination))
		return hoteldomain.SearchResult{Hotels: hotels, Restaurants: restaurants}, nil
	}

	rec := &hoteldomain.SearchRecord{
		Destination: req.Destination,
		Theme:       req.Theme,
		HotelRating: req.HotelRating,
		Budget:      req.Budget,
		Hotels:      hotels,
		Restaurants: restaurants,
		RawResponse: content,
		OwnerUserID: req.UserID,
		CreatedAt:   now,
	}
	if _, err := s.repo.Insert(ctx, rec); err != nil {
		s.log.Error("failed to save hotel search", zap.Error(err))
	}
	return hoteldomain.SearchResult{Hotels: hotels, Restaurants: restaurants}, nil
}

func (s *Service) HistoryByDestination(ctx context.Context, destination string, limit int64) ([]hoteldomain.HistoryEntry, error) {
	destination = titleCaser.String(strings.TrimSpace(destination))
	if destination == "" {
		return nil, hoteldomain.ErrMissingDestination
	}
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.repo.ByDestination(ctx, destination, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []hoteldomain.HistoryEntry{}
	}
	return entries, nil
}

func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.clock.Now().Add(-hoteldomain.Retention))
}

func buildSearchPrompt(req hoteldomain.SearchRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recommend hotels and restaurants in %s for a %s trip.\n\n", req.Destination, req.Theme)
	fmt.Fprintf(&sb, "Traveler Preferences:\n")
	fmt.Fprintf(&sb, "- Hotel rating: %s\n", req.HotelRating)
	fmt.Fprintf(&sb, "- Budget: %s\n", req.Budget)
	if req.ActivityPreferences != "" {
		fmt.Fprintf(&sb, "- Preferred activities: %s\n", req.ActivityPreferences)
	}
	sb.WriteString(`
Requirements:
- Provide up to 10 hotel recommendations under a "Hotels" heading
- Provide up to 10 restaurant recommendations under a "Restaurants" heading
- For each hotel: name, price range per night, and a one-line description
- For each restaurant: name, cuisine type, price range, and a one-line description
- Number each recommendation and keep prices in the local currency
`)
	return sb.String()
}
