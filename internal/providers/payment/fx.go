package payment

import (
	"github.com/ezahpizza/travel-agent-backend/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.payment",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	return NewStripe(StripeConfig{
		APIKey:  cfg.StripeAPIKey,
		PriceID: cfg.StripePriceID,
	})
}
