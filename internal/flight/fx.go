package flight

import (
	"github.com/ezahpizza/travel-agent-backend/internal/flight/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/flight/service"
	"go.uber.org/fx"
)

var Module = fx.Module("flight.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
