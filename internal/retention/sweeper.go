// Package retention prunes expired cache records on a fixed interval.
package retention

import (
	"context"
	"time"

	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	flightdomain "github.com/ezahpizza/travel-agent-backend/internal/flight/domain"
	hoteldomain "github.com/ezahpizza/travel-agent-backend/internal/hotel/domain"
	itinerarydomain "github.com/ezahpizza/travel-agent-backend/internal/itinerary/domain"
	researchdomain "github.com/ezahpizza/travel-agent-backend/internal/research/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const defaultInterval = 24 * time.Hour

type Params struct {
	fx.In

	Log          *zap.Logger
	Clock        clock.Clock
	FlightSvc    flightdomain.Service
	HotelSvc     hoteldomain.Service
	ResearchSvc  researchdomain.Service
	ItinerarySvc itinerarydomain.Service
}

// Sweeper runs the per-domain retention sweeps. Each sweep is a single
// delete-many against that domain's cutoff, so re-running is harmless.
type Sweeper struct {
	log          *zap.Logger
	clock        clock.Clock
	flightSvc    flightdomain.Service
	hotelSvc     hoteldomain.Service
	researchSvc  researchdomain.Service
	itinerarySvc itinerarydomain.Service
}

func New(p Params) *Sweeper {
	return &Sweeper{
		log:          p.Log.Named("retention"),
		clock:        p.Clock,
		flightSvc:    p.FlightSvc,
		hotelSvc:     p.HotelSvc,
		researchSvc:  p.ResearchSvc,
		itinerarySvc: p.ItinerarySvc,
	}
}

// Result counts the records removed by one sweep.
type Result struct {
	Flights     int64
	Hotels      int64
	Research    int64
	Itineraries int64
}

// RunSweep executes all four domain sweeps. A failing domain is logged and
// skipped; the remaining domains still run.
func (s *Sweeper) RunSweep(ctx context.Context) Result {
	start := s.clock.Now()
	var res Result

	sweeps := []struct {
		name  string
		run   func(context.Context) (int64, error)
		count *int64
	}{
		{"flights", s.flightSvc.Sweep, &res.Flights},
		{"hotels_restaurants", s.hotelSvc.Sweep, &res.Hotels},
		{"research", s.researchSvc.Sweep, &res.Research},
		{"itineraries", s.itinerarySvc.Sweep, &res.Itineraries},
	}
	for _, sweep := range sweeps {
		deleted, err := sweep.run(ctx)
		if err != nil {
			s.log.Error("retention sweep failed",
				zap.String("collection", sweep.name), zap.Error(err))
			continue
		}
		*sweep.count = deleted
	}

	s.log.Info("retention sweep finished",
		zap.Int64("flights", res.Flights),
		zap.Int64("hotels_restaurants", res.Hotels),
		zap.Int64("research", res.Research),
		zap.Int64("itineraries", res.Itineraries),
		zap.Duration("took", s.clock.Now().Sub(start)),
	)
	return res
}

// RunForever sweeps on every tick until ctx is cancelled.
func (s *Sweeper) RunForever(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.RunSweep(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunSweep(ctx)
		}
	}
}
