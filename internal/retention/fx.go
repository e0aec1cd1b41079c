package retention

import (
	"context"

	"github.com/ezahpizza/travel-agent-backend/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("retention",
	fx.Provide(New),
	fx.Invoke(register),
)

func register(lc fx.Lifecycle, cfg config.Config, sweeper *Sweeper) {
	if !cfg.Retention.Enabled || cfg.IsTest() {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go sweeper.RunForever(ctx, cfg.Retention.Interval)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
			return nil
		},
	})
}
