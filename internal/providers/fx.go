package providers

import (
	"github.com/ezahpizza/travel-agent-backend/internal/providers/agent"
	"github.com/ezahpizza/travel-agent-backend/internal/providers/payment"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	agent.Module,
	payment.Module,
)
