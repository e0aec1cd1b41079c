package hotel

import (
	"github.com/ezahpizza/travel-agent-backend/internal/hotel/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/hotel/service"
	"go.uber.org/fx"
)

var Module = fx.Module("hotel.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
