package usage

import (
	"github.com/ezahpizza/travel-agent-backend/internal/usage/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/usage/service"
	"go.uber.org/fx"
)

var Module = fx.Module("usage.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
