package research

import (
	"github.com/ezahpizza/travel-agent-backend/internal/research/repository"
	"github.com/ezahpizza/travel-agent-backend/internal/research/service"
	"go.uber.org/fx"
)

var Module = fx.Module("research.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
