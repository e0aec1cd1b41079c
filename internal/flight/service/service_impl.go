package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	flightdomain "github.com/ezahpizza/travel-agent-backend/internal/flight/domain"
	obsmetrics "github.com/ezahpizza/travel-agent-backend/internal/observability/metrics"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/ezahpizza/travel-agent-backend/internal/textparse"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

var iataPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

type Service struct {
	repo    flightdomain.Repository
	agent   agent.Agent
	clock   clock.Clock
	log     *zap.Logger
	metrics *obsmetrics.HTTPMetrics
}

type ServiceParam struct {
	fx.In

	Repo    flightdomain.Repository
	Agent   agent.Agent
	Clock   clock.Clock
	Log     *zap.Logger
	Metrics *obsmetrics.HTTPMetrics `optional:"true"`
}

func NewService(p ServiceParam) flightdomain.Service {
	return &Service{
		repo:    p.Repo,
		agent:   p.Agent,
		clock:   p.Clock,
		log:     p.Log.Named("flight.service"),
		metrics: p.Metrics,
	}
}

func (s *Service) Search(ctx context.Context, req flightdomain.SearchRequest) (flightdomain.SearchResult, error) {
	req, err := normalize(req)
	if err != nil {
		return flightdomain.SearchResult{}, err
	}

	now := s.clock.Now()
	cached, err := s.repo.FindFresh(ctx, req, now.Add(-flightdomain.CacheWindow))
	if err == nil {
		s.metrics.RecordCacheHit("flight")
		s.log.Info("returning cached flight results",
			zap.String("source", req.Source),
			zap.String("destination", req.Destination),
		)
		return flightdomain.SearchResult{Flights: cached.Flights, Cached: true}, nil
	}
	if !errors.Is(err, store.ErrNoDocuments) {
		// A failing read never blocks the search, it just costs a recompute.
		s.log.Warn("flight cache lookup failed", zap.Error(err))
	}
	s.metrics.RecordCacheMiss("flight")

	content, err := s.agent.Run(ctx, buildSearchPrompt(req))
	if err != nil {
		s.log.Error("flight agent call failed", zap.Error(err))
		return flightdomain.SearchResult{}, fmt.Errorf("%w: %v", flightdomain.ErrAgentFailure, err)
	}

	flights := textparse.Flights(content)
	if len(flights) == 0 {
		s.log.Info("no flights parsed from agent response",
			zap.String("source", req.Source),
			zap.String("destination", req.Destination),
		)
		return flightdomain.SearchResult{Flights: flights}, nil
	}

	rec := &flightdomain.SearchRecord{
		Source:        req.Source,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Flights:       flights,
		RawResponse:   content,
		OwnerUserID:   req.UserID,
		CreatedAt:     now,
	}
	if _, err := s.repo.Insert(ctx, rec); err != nil {
		// The computed result is still good; only the cache write is lost.
		s.log.Error("failed to save flight search", zap.Error(err))
	}
	return flightdomain.SearchResult{Flights: flights}, nil
}

func (s *Service) History(ctx context.Context, userID string, limit int64) ([]flightdomain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	entries, err := s.repo.Recent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []flightdomain.HistoryEntry{}
	}
	return entries, nil
}

func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.repo.DeleteOlderThan(ctx, s.clock.Now().Add(-flightdomain.Retention))
}

func normalize(req flightdomain.SearchRequest) (flightdomain.SearchRequest, error) {
	req.Source = strings.ToUpper(strings.TrimSpace(req.Source))
	req.Destination = strings.ToUpper(strings.TrimSpace(req.Destination))
	if !iataPattern.MatchString(req.Source) || !iataPattern.MatchString(req.Destination) {
		return req, flightdomain.ErrInvalidAirportCode
	}

	depart, err := time.Parse(dateLayout, req.DepartureDate)
	if err != nil {
		return req, flightdomain.ErrInvalidDate
	}
	ret, err := time.Parse(dateLayout, req.ReturnDate)
	if err != nil {
		return req, flightdomain.ErrInvalidDate
	}
	if !ret.After(depart) {
		return req, flightdomain.ErrReturnBeforeDepart
	}
	return req, nil
}

func buildSearchPrompt(req flightdomain.SearchRequest) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Find the best round-trip flight options from %s to %s.\n\n", req.Source, req.Destination)
	fmt.Fprintf(&sb, "Flight Details:\n")
	fmt.Fprintf(&sb, "- Departure Airport: %s\n", req.Source)
	fmt.Fprintf(&sb, "- Arrival Airport: %s\n", req.Destination)
	fmt.Fprintf(&sb, "- Outbound Date: %s\n", req.DepartureDate)
	fmt.Fprintf(&sb, "- Return Date: %s\n", req.ReturnDate)
	fmt.Fprintf(&sb, "- Currency: INR (Indian Rupees)\n\n")
	sb.WriteString(`Requirements:
- Find the top 3-5 most affordable round-trip flight options
- Include both direct flights and flights with connections
- Search multiple airlines (IndiGo, Air India, SpiceJet, Vistara, GoFirst, etc.)
- Compare prices across different booking platforms

For each flight option, provide:
- Airline name and flight numbers
- Total price for round-trip in INR
- Departure time, arrival time and duration for each leg
- Number of stops (direct or connecting)
- Booking website or platform information

Format the response with clear sections for each flight option.
Sort by price from lowest to highest.
If no flights are available for the exact dates, suggest nearby dates or alternative airports.
`)
	return sb.String()
}
