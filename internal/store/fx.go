package store

import (
	"context"
	"fmt"

	"github.com/ezahpizza/travel-agent-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the document store selected by configuration.
var Module = fx.Module("store",
	fx.Provide(New),
)

// New builds the configured store backend. The mongo backend connects on
// startup and disconnects on shutdown via the fx lifecycle.
func New(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Info("using in-memory document store")
		return NewMemory(), nil
	case config.DriverNull:
		log.Info("using null document store (offline mode)")
		return NewNull(), nil
	case config.DriverMongo:
		var client *mongo.Client
		wrapper := &lazyMongo{}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				c, db, err := Connect(ctx, cfg.MongoURL, cfg.DatabaseName)
				if err != nil {
					return fmt.Errorf("connect mongo: %w", err)
				}
				client = c
				wrapper.inner = NewMongo(db)
				log.Info("connected to mongo", zap.String("database", cfg.DatabaseName))
				return nil
			},
			OnStop: func(ctx context.Context) error {
				if client == nil {
					return nil
				}
				log.Info("closing mongo connection")
				return client.Disconnect(ctx)
			},
		})
		return wrapper, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
