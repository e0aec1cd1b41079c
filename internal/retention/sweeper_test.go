package retention

import (
	"context"
	"testing"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	flightdomain "github.com/ezahpizza/travel-agent-backend/internal/flight/domain"
	flightrepo "github.com/ezahpizza/travel-agent-backend/internal/flight/repository"
	flightservice "github.com/ezahpizza/travel-agent-backend/internal/flight/service"
	hotelrepo "github.com/ezahpizza/travel-agent-backend/internal/hotel/repository"
	hotelservice "github.com/ezahpizza/travel-agent-backend/internal/hotel/service"
	itineraryrepo "github.com/ezahpizza/travel-agent-backend/internal/itinerary/repository"
	itineraryservice "github.com/ezahpizza/travel-agent-backend/internal/itinerary/service"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
	researchrepo "github.com/ezahpizza/travel-agent-backend/internal/research/repository"
	researchservice "github.com/ezahpizza/travel-agent-backend/internal/research/service"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSweeper(t *testing.T) (*Sweeper, flightdomain.Service, *clock.FakeClock) {
	t.Helper()
	mem := store.NewMemory()
	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	stub := agent.Func(func(ctx context.Context, prompt string) (string, error) {
		return "**Option 1: IndiGo**\n- Price: ₹8,500\n- Direct flight", nil
	})
	log := zap.NewNop()

	flightSvc := flightservice.NewService(flightservice.ServiceParam{
		Repo: flightrepo.Provide(mem), Agent: stub, Clock: fc, Log: log,
	})
	hotelSvc := hotelservice.NewService(hotelservice.ServiceParam{
		Repo: hotelrepo.Provide(mem), Agent: stub, Clock: fc, Log: log,
	})
	researchSvc := researchservice.NewService(researchservice.ServiceParam{
		Repo: researchrepo.Provide(mem), Agent: stub, Clock: fc, Log: log,
	})
	itinerarySvc := itineraryservice.NewService(itineraryservice.ServiceParam{
		Repo: itineraryrepo.Provide(mem), Agent: stub, Clock: fc, Log: log,
	})

	sweeper := New(Params{
		Log:          log,
		Clock:        fc,
		FlightSvc:    flightSvc,
		HotelSvc:     hotelSvc,
		ResearchSvc:  researchSvc,
		ItinerarySvc: itinerarySvc,
	})
	return sweeper, flightSvc, fc
}

func TestRunSweepIsIdempotent(t *testing.T) {
	sweeper, flightSvc, fc := newSweeper(t)
	ctx := context.Background()

	_, err := flightSvc.Search(ctx, flightdomain.SearchRequest{
		Source:        "DEL",
		Destination:   "BOM",
		DepartureDate: "2026-03-10",
		ReturnDate:    "2026-03-15",
		UserID:        "user-1",
	})
	require.NoError(t, err)

	// Within retention nothing is removed.
	res := sweeper.RunSweep(ctx)
	require.Zero(t, res.Flights)

	fc.Advance(flightdomain.Retention + time.Hour)
	res = sweeper.RunSweep(ctx)
	require.Equal(t, int64(1), res.Flights)

	// A second pass over the same horizon removes nothing more.
	res = sweeper.RunSweep(ctx)
	require.Zero(t, res.Flights)
}
