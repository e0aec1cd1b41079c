package subscription

import (
	"github.com/ezahpizza/travel-agent-backend/internal/subscription/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/subscription/service"
	"go.uber.org/fx"
)

var Module = fx.Module("subscription.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
