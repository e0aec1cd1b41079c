package service

import (
	"context"
	"testing"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
	researchdomain "github.com/ezahpizza/travel-agent-backend/internal/research/domain"
	"github.com/ezahpizza/travel-agent-backend/internal/research/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const agentResearchResponse = `
Kyoto blends centuries of tradition with a walkable modern city.
Spring and autumn offer the best weather for temple visits.

## Top Attractions
- Fushimi Inari Shrine
- Kinkaku-ji
- Arashiyama Bamboo Grove

## Recommendations
- Buy a bus day pass
- Book temple visits early in the morning

## Safety Tips
- Kyoto is very safe; watch bicycle lanes

## Cultural Info
- Remove shoes before entering temples
`

func newTestService(t *testing.T, calls *int) (researchdomain.Service, *clock.FakeClock) {
	t.Helper()
	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := NewService(ServiceParam{
		Repo: repository.Provide(store.NewMemory()),
		Agent: agent.Func(func(ctx context.Context, prompt string) (string, error) {
			*calls++
			return agentResearchResponse, nil
		}),
		Clock: fc,
		Log:   zap.NewNop(),
	})
	return svc, fc
}

func baseRequest() researchdomain.Request {
	return researchdomain.Request{
		Destination: "kyoto",
		Theme:       "Culture",
		Activities:  "temples, food",
		NumDays:     5,
		Budget:      "Standard",
		FlightClass: "Economy",
		HotelRating: "Any",
		UserID:      "user-1",
	}
}

func TestResearchCachesWithinWindow(t *testing.T) {
	calls := 0
	svc, fc := newTestService(t, &calls)
	ctx := context.Background()

	first, err := svc.Research(ctx, baseRequest())
	require.NoError(t, err)
	require.False(t, first.Cached)
	require.Equal(t, "Kyoto", first.Destination)
	require.Len(t, first.Research.Attractions, 3)
	require.NotEmpty(t, first.Research.Summary)

	fc.Advance(11 * time.Hour)
	second, err := svc.Research(ctx, baseRequest())
	require.NoError(t, err)
	require.True(t, second.Cached)
	require.Equal(t, first.Research, second.Research)
	require.Equal(t, 1, calls)

	fc.Advance(2 * time.Hour)
	third, err := svc.Research(ctx, baseRequest())
	require.NoError(t, err)
	require.False(t, third.Cached)
	require.Equal(t, 2, calls)
}

func TestResearchKeyIncludesNumDays(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, &calls)
	ctx := context.Background()

	_, err := svc.Research(ctx, baseRequest())
	require.NoError(t, err)

	other := baseRequest()
	other.NumDays = 7
	res, err := svc.Research(ctx, other)
	require.NoError(t, err)
	require.False(t, res.Cached)
	require.Equal(t, 2, calls)
}

func TestResearchValidation(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, &calls)
	ctx := context.Background()

	req := baseRequest()
	req.Destination = ""
	_, err := svc.Research(ctx, req)
	require.ErrorIs(t, err, researchdomain.ErrMissingDestination)

	req = baseRequest()
	req.NumDays = 0
	_, err = svc.Research(ctx, req)
	require.ErrorIs(t, err, researchdomain.ErrInvalidNumDays)

	req = baseRequest()
	req.NumDays = 31
	_, err = svc.Research(ctx, req)
	require.ErrorIs(t, err, researchdomain.ErrInvalidNumDays)

	require.Zero(t, calls)
}

func TestResearchHistory(t *testing.T) {
	calls := 0
	svc, _ := newTestService(t, &calls)
	ctx := context.Background()

	_, err := svc.Research(ctx, baseRequest())
	require.NoError(t, err)

	entries, err := svc.HistoryByDestination(ctx, "KYOTO", 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 5, entries[0].NumDays)
}
