package service

import (
	"context"
	"testing"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	itinerarydomain "github.com/ezahpizza/travel-agent-backend/internal/itinerary/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/itinerary/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const agentItineraryResponse = `
**Day 1: Arrival**
- 10:00 Check in at the hotel
- 14:00 Walk the old town
- Dinner at a local bistro

**Day 2: Sights**
- 09:30 Visit the palace
- Lunch near the market

## Travel Tips
- Carry small change for public transport

## Packing Suggestions
- Comfortable walking shoes
`

func newTestService(t *testing.T, calls *int) (itinerarydomain.Service, *clock.FakeClock) {
	t.Helper()
	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(ServiceParam{
		Repo: repository.Provide(store.NewMemory()),
		Agent: agent.Func(func(ctx context.Context, prompt string) (string, error) {
			*calls++
			return agentItineraryResponse, nil
		}),
		Clock: fc,
		Log:   zap.NewNop(),
	})
	return svc, fc
}

func baseRequest() itinerarydomain.GenerateRequest {
	return itinerarydomain.GenerateRequest{
		Destination: "jaipur",
		Theme:       "Heritage",
		Activities:  "forts, markets",
		NumDays:     2,
		Budget:      "Standard",
		FlightClass: "Economy",
		HotelRating: "Any",
		UserID:      "user-1",
	}
}

func TestGenerateCachesPerUser(t *testing.T) {
	calls := 0
	svc, fc := newTestService(t, &calls)
	ctx := context.Background()

	first, err := svc.Generate(ctx, baseRequest())
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.NotEmpty(t, first.ID)
	require.Len(t, first.Plan.DailyPlans, 2)
	require.Len(t, first.Plan.DailyPlans[0].Activities, 2)

	fc.Advance(23 * time.Hour)
	second, err := svc.Generate(ctx, baseRequest())
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, calls)

	// Another user planning the same trip gets a fresh generation.
	other := baseRequest()
	other.UserID = "user-2"
	res, err := svc.Generate(ctx, other)
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, 2, calls)

	// Past the 24h window the first user recomputes too.
	fc.Advance(2 * time.Hour)
	third, err := svc.Generate(ctx, baseRequest())
	require.NoError(t, err)
	require.False(t, third.Cached)
	require.Equal(t, 3, calls)
}

func TestGetByIDOwnerChecked(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, &calls)
	ctx := context.Background()

	res, err := svc.Generate(ctx, baseRequest())
	require.NoError(t, err)

	rec, err := svc.GetByID(ctx, res.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Jaipur", rec.Destination)

	_, err = svc.GetByID(ctx, res.ID, "user-2")
	require.ErrorIs(t, err, itinerarydomain.ErrNotFound)

	_, err = svc.GetByID(ctx, "not-a-hex-id", "user-1")
	require.ErrorIs(t, err, itinerarydomain.ErrNotFound)
}

func TestUpdateSetsFieldsAndTimestamp(t *testing.T) {
	calls := 0
	svc, fc := newTestService(t, &calls)
	ctx := context.Background()

	res, err := svc.Generate(ctx, baseRequest())
	require.NoError(t, err)

	fc.Advance(time.Hour)
	err = svc.Update(ctx, res.ID, "user-1", itinerarydomain.UpdateRequest{Theme: "Food"})
	require.NoError(t, err)

	rec, err := svc.GetByID(ctx, res.ID, "user-1")
	require.NoError(t, err)
	require.Equal(t, "Food", rec.Theme)
	require.True(t, rec.UpdatedAt.After(rec.CreatedAt))

	err = svc.Update(ctx, res.ID, "user-2", itinerarydomain.UpdateRequest{Theme: "Food"})
	require.ErrorIs(t, err, itinerarydomain.ErrNotFound)
}

func TestDeleteOwnerChecked(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, &calls)
	ctx := context.Background()

	res, err := svc.Generate(ctx, baseRequest())
	require.NoError(t, err)

	err = svc.Delete(ctx, res.ID, "user-2")
	require.ErrorIs(t, err, itinerarydomain.ErrNotFound)

	err = svc.Delete(ctx, res.ID, "user-1")
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, res.ID, "user-1")
	require.ErrorIs(t, err, itinerarydomain.ErrNotFound)
}

func TestStatsAggregation(t *testing.T) {
	calls := 0
	svc, fc := newTestService(t, &calls)
	ctx := context.Background()

	destinations := []string{"jaipur", "jaipur", "goa"}
	for i, dest := range destinations {
		req := baseRequest()
		req.Destination = dest
		req.UserID = "user-" + string(rune('a'+i))
		_, err := svc.Generate(ctx, req)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalItineraries)
	require.Equal(t, int64(3), stats.RecentLastSevenDays)
	require.Equal(t, 2.0, stats.AverageTripDuration)
	require.NotEmpty(t, stats.PopularDestinations)
	require.Equal(t, "Jaipur", stats.PopularDestinations[0].Label)
	require.Equal(t, int64(2), stats.PopularDestinations[0].Count)

	// Eight days on, nothing counts as recent any more.
	fc.Advance(8 * 24 * time.Hour)
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	require.Zero(t, stats.RecentLastSevenDays)
	require.Equal(t, int64(3), stats.TotalItineraries)
}

func TestByPreferences(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, &calls)
	ctx := context.Background()

	_, err := svc.Generate(ctx, baseRequest())
	require.NoError(t, err)

	luxury := baseRequest()
	luxury.UserID = "user-2"
	luxury.Budget = "Luxury"
	_, err = svc.Generate(ctx, luxury)
	require.NoError(t, err)

	entries, err := svc.ByPreferences(ctx, itinerarydomain.PreferenceFilter{Budget: "Luxury"}, 20)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "Luxury", entries[0].Budget)

	entries, err = svc.ByPreferences(ctx, itinerarydomain.PreferenceFilter{Theme: "Heritage"}, 20)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}
