package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	obsmetrics "github.com/ezahpizza/travel-agent-backend/internal/observability/metrics"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
	researchdomain "github.com/ezahpizza/travel-agent-backend/internal/research/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxTripDays = 30

var titleCaser = cases.Title(language.English)

type Service struct {
	repo    researchdomain.Repository
	agent   agent.Agent
	clock   clock.Clock
	log     *zap.Logger
	metrics *obsmetrics.HTTPMetrics
}

type ServiceParam struct {
	fx.In

	Repo    researchdomain.Repository
	Agent   agent.Agent
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewService(p ServiceParam) researchdomain.Service {
	return &Service{
		repo:    p.Repo,
		agent:   p.Agent,
		clock:   p.Clock,
		log:     p.Log.Named("research.service"),
		metrics: p.Metrics,
	}
}

func (s *Service) Research(ctx context.Context, req researchdomain.Request) (researchdomain.Result, error) {
	req.Destination = titleCaser.String(strings.TrimSpace(req.Destination))
	if req.Destination == "" {
		return researchdomain.Result{}, researchdomain.ErrMissingDestination
	}
	if req.NumDays < 1 || req.NumDays > maxTripDays {
		return researchdomain.Result{}, researchdomain.ErrInvalidNumDays
	}

	now := s.clock.Now()
	cached, err := s.repo.FindFresh(ctx, req, now.Add(-researchdomain.CacheWindow))
	if err == nil {
		s.metrics.RecordCacheHit("research")
		s.log.Info("returning cached research",
			zap.String("destination", req.Destination))
		return researchdomain.Result{
			Destination: cached.Destination,
			Research:    cached.Research,
			Cached:      true,
		}, nil
	}
	if !errors.Is(err, store.ErrNoDocuments) {
		s.log.Warn("research cache lookup failed", zap.Error(err))
	}
	s.metrics.RecordCacheMiss("research")

	content, err := s.agent.Run(ctx, buildResearchPrompt(req))
	if err != nil {
		s.log.Error("research agent call failed", zap.Error(err))
		return researchdomain.Result{}, fmt.Errorf("%w: %v", researchdomain.ErrAgentFailure, err)
	}

	parsed := textparse.ResearchSections(content)
	if parsed.Summary == "" && len(parsed.Attractions) == 0 && len(parsed.Recommendations) == 0 {
		s.log.Info("no research sections parsed from agent response",
			zap.String("destination", req.Destination))
		return researchdomain.Result{Destination: req.Destination, Research: parsed}, nil
	}

	rec := &researchdomain.Record{
		Destination: req.Destination,
		Theme:       req.Theme,
		NumDays:     req.NumDays,
		Budget:      req.Budget,
		Research:    parsed,
		RawResponse: content,
		OwnerUserID: req.UserID,
		CreatedAt:   now,
	}
	if _, err := s.repo.Insert(ctx, rec); err != nil {
		s.log.Error("failed to save research", zap.Error(err))
	}
	return researchdomain.Result{Destination: req.Destination, Research: parsed}, nil
}

func (s *Service) HistoryByDestination(ctx context.Context, destination string, limit int64) ([]researchdomain.HistoryEntry, error) {
	destination = titleCaser.String(strings.TrimSpace(destination))
	if destination == "" {
		return nil, researchdomain.ErrMissingDestination
	}
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.repo.ByDestination(ctx, destination, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []researchdomain.HistoryEntry{}
	}
	return entries, nil
}

func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.clock.Now().Add(-researchdomain.Retention))
}

func buildResearchPrompt(req researchdomain.Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Research %s for a %d-day %s trip.\n\n", req.Destination, req.NumDays, req.Theme)
	fmt.Fprintf(&sb, "Traveler Profile:\n")
	fmt.Fprintf(&sb, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&sb, "- Flight class: %s\n", req.FlightClass)
	fmt.Fprintf(&sb, "- Hotel rating: %s\n", req.HotelRating)
	if req.Activities != "" {
		fmt.Fprintf(&sb, "- Preferred activities: %s\n", req.Activities)
	}
	sb.WriteString(`
Structure the response with these sections:
- A short opening summary of the destination (weather, vibe, best time to visit)
- "Top Attractions": up to 10 must-see places as a bulleted list
- "Recommendations": practical advice as a bulleted list
- "Safety Tips": local safety notes as a bulleted list
- "Cultural Info": customs and etiquette as a bulleted list
`)
	return sb.String()
}
