package main

import (
	"github.com/ezahpizza/travel-agent-backend/internal/clock"
	"github.com/ezahpizza/travel-agent-backend/internal/config"
	"github.com/ezahpizza/travel-agent-backend/internal/flight"
	"github.com/ezahpizza/travel-agent-backend/internal/hotel"
	"github.com/ezahpizza/travel-agent-backend/internal/itinerary"
	"github.com/ezahpizza/travel-agent-backend/internal/migration"
	"github.com/ezahpizza/travel-agent-backend/internal/observability"
	"github.com/ezahpizza/travel-agent-backend/internal/providers"
	"github.com/ezahpizza/travel-agent-backend/internal/ratelimit"
	"github.com/ezahpizza/travel-agent-backend/internal/research"
	"github.com/ezahpizza/travel-agent-backend/internal/retention"
	"github.com/ezahpizza/travel-agent-backend/internal/server"
	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"github.com/ezahpizza/travel-agent-backend/internal/subscription"
	"github.com/ezahpizza/travel-agent-backend/internal/usage"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		clock.Module,
		store.Module,
		migration.Module,

		providers.Module,
		ratelimit.Module,

		flight.Module,
		hotel.Module,
		research.Module,
		itinerary.Module,
		usage.Module,
		subscription.Module,
		retention.Module,

		server.Module,
	)
	app.Run()
}
