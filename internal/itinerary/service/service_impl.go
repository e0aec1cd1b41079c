package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	itinerarydomain "github.com/ezahpizza/travel-agent-backend/internal/itinerary/domain"
	obsmetrics "github.com/ezahpizza/travel-agent-backend/internal/observability/metrics"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
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
	repo    itinerarydomain.Repository
	agent   agent.Agent
	clock   clock.Clock
	log     *zap.Logger
	metrics *obsmetrics.HTTPMetrics
}

type ServiceParam struct {
	fx.In

	Repo    itinerarydomain.Repository
	Agent   agent.Agent
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewService(p ServiceParam) itinerarydomain.Service {
	return &Service{
		repo:    p.Repo,
		agent:   p.Agent,
		clock:   p.Clock,
		log:     p.Log.Named("itinerary.service"),
		metrics: p.Metrics,
	}
}

func (s *Service) Generate(ctx context.Context, req itinerarydomain.GenerateRequest) (itinerarydomain.Result, error) {
	req.Destination = titleCaser.String(strings.TrimSpace(req.Destination))
	if req.Destination == "" {
		return itinerarydomain.Result{}, itinerarydomain.ErrMissingDestination
	}
	if req.NumDays < 1 || req.NumDays > maxTripDays {
		return itinerarydomain.Result{}, itinerarydomain.ErrInvalidNumDays
	}

	now := s.clock.Now()
	// Itineraries are cached per owner; two users planning the same trip
	// still get their own records.
	cached, err := s.repo.FindFresh(ctx, req, now.Add(-itinerarydomain.CacheWindow))
	if err == nil {
		s.metrics.RecordCacheHit("itinerary")
		s.log.Info("returning cached itinerary",
			zap.String("destination", req.Destination),
			zap.String("userid", req.UserID),
		)
		return resultFromRecord(cached, true), nil
	}
	if !errors.Is(err, store.ErrNoDocuments) {
		s.log.Warn("itinerary cache lookup failed", zap.Error(err))
	}
	s.metrics.RecordCacheMiss("itinerary")

	content, err := s.agent.Run(ctx, buildItineraryPrompt(req))
	if err != nil {
		s.log.Error("itinerary agent call failed", zap.Error(err))
		return itinerarydomain.Result{}, fmt.Errorf("%w: %v", itinerarydomain.ErrAgentFailure, err)
	}

	plan := textparse.ItineraryPlan(content, req.NumDays)
	if emptyPlan(plan) {
		s.log.Info("no day plans parsed from agent response",
			zap.String("destination", req.Destination))
		return itinerarydomain.Result{
			Destination: req.Destination,
			NumDays:     req.NumDays,
			Theme:       req.Theme,
			Plan:        plan,
		}, nil
	}

	rec := &itinerarydomain.Record{
		Destination: req.Destination,
		Theme:       req.Theme,
		Activities:  req.Activities,
		NumDays:     req.NumDays,
		Budget:      req.Budget,
		FlightClass: req.FlightClass,
		HotelRating: req.HotelRating,
		Plan:        plan,
		RawResponse: content,
		OwnerUserID: req.UserID,
		CreatedAt:   now,
	}
	id, err := s.repo.Insert(ctx, rec)
	if err != nil {
		s.log.Error("failed to save itinerary", zap.Error(err))
	}
	return itinerarydomain.Result{
		ID:          id,
		Destination: req.Destination,
		NumDays:     req.NumDays,
		Theme:       req.Theme,
		Plan:        plan,
	}, nil
}

func (s *Service) HistoryByUser(ctx context.Context, userID string, limit int64) ([]itinerarydomain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.repo.ByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []itinerarydomain.HistoryEntry{}
	}
	return entries, nil
}

func (s *Service) GetByID(ctx context.Context, id, userID string) (*itinerarydomain.Record, error) {
	return s.repo.FindByID(ctx, id, userID)
}

func (s *Service) Update(ctx context.Context, id, userID string, update itinerarydomain.UpdateRequest) error {
	return s.repo.Update(ctx, id, userID, update, s.clock.Now())
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *Service) ByPreferences(ctx context.Context, filter itinerarydomain.PreferenceFilter, limit int64) ([]itinerarydomain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	entries, err := s.repo.ByPreferences(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []itinerarydomain.HistoryEntry{}
	}
	return entries, nil
}

func (s *Service) Stats(ctx context.Context) (itinerarydomain.Stats, error) {
	stats, err := s.repo.Stats(ctx, s.clock.Now())
	if err != nil {
		return stats, err
	}
	if stats.PopularDestinations == nil {
		stats.PopularDestinations = []itinerarydomain.LabelCount{}
	}
	if stats.PopularThemes == nil {
		stats.PopularThemes = []itinerarydomain.LabelCount{}
	}
	return stats, nil
}

func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.clock.Now().Add(-itinerarydomain.Retention))
}

func resultFromRecord(rec *itinerarydomain.Record, cached bool) itinerarydomain.Result {
	return itinerarydomain.Result{
		ID:          rec.ID.Hex(),
		Destination: rec.Destination,
		NumDays:     rec.NumDays,
		Theme:       rec.Theme,
		Plan:        rec.Plan,
		Cached:      cached,
	}
}

func emptyPlan(plan textparse.Itinerary) bool {
	for _, day := range plan.DailyPlans {
		if len(day.Activities) > 0 || len(day.Meals) > 0 {
			return false
		}
	}
	return len(plan.TravelTips) == 0 && len(plan.PackingSuggestions) == 0
}

func buildItineraryPrompt(req itinerarydomain.GenerateRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a detailed %d-day itinerary for %s.\n\n", req.NumDays, req.Destination)
	fmt.Fprintf(&sb, "Trip Profile:\n")
	fmt.Fprintf(&sb, "- Theme: %s\n", req.Theme)
	fmt.Fprintf(&sb, "- Budget: %s\n", req.Budget)
	fmt.Fprintf(&sb, "- Flight class: %s\n", req.FlightClass)
	fmt.Fprintf(&sb, "- Hotel rating: %s\n", req.HotelRating)
	if req.Activities != "" {
		fmt.Fprintf(&sb, "- Preferred activities: %s\n", req.Activities)
	}
	if req.VisaRequired {
		sb.WriteString("- Visa arrangements are required; include a reminder\n")
	}
	if req.InsuranceRequired {
		sb.WriteString("- Travel insurance is required; include a reminder\n")
	}

	if req.ResearchSummary != "" {
		fmt.Fprintf(&sb, "\nDestination research:\n%s\n", req.ResearchSummary)
	}
	if len(req.SelectedFlights) > 0 {
		sb.WriteString("\nBooked flights:\n")
		for _, f := range req.SelectedFlights {
			fmt.Fprintf(&sb, "- %s, %s, departs %s\n", f.Airline, f.Price, f.DepartureTime)
		}
	}
	if req.HotelRestaurantSummary != "" {
		fmt.Fprintf(&sb, "\nHotel and restaurant picks:\n%s\n", req.HotelRestaurantSummary)
	}

	sb.WriteString(`
Structure the response as:
- A "Day N" heading for each day, with a bulleted schedule (times where sensible)
- Meals called out as breakfast/lunch/dinner bullets
- A "Travel Tips" section with practical advice
- A "Packing Suggestions" section
- A total estimated cost line under a "Total Cost" heading
`)
	return sb.String()
}
