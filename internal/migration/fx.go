package migration

import (
	"context"

	"github.com/ezahpizza/travel-agent-backend/internal/store"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("migrations",
	fx.Invoke(register),
)

// register runs after the store hook so the mongo backend is connected
// before indexes are created.
func register(lc fx.Lifecycle, s store.Store, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := EnsureIndexes(ctx, s); err != nil {
				return err
			}
			log.Info("collection indexes ensured")
			return nil
		},
	})
}
