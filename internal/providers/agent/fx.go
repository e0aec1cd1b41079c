package agent

import (
	"github.com/ezahpizza/travel-agent-backend/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.agent",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Agent {
	return NewGemini(Config{
		Endpoint: cfg.AgentEndpoint,
		APIKey:   cfg.AgentAPIKey,
		Model:    cfg.AgentModel,
		Timeout:  cfg.AgentTimeout,
	})
}
