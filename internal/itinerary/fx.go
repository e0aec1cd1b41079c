package itinerary

import (
	"github.com/ezahpizza/travel-agent-backend/internal/itinerary/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/itinerary/service"
	"go.uber.org/fx"
)

var Module = fx.Module("itinerary.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
