package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/marketplace-api/internal/config"
	"github.com/phrazzld/marketplace-api/internal/platform/memory"
	"github.com/phrazzld/marketplace-api/internal/platform/mongodb"
	"github.com/phrazzld/marketplace-api/internal/platform/postgres"
	"github.com/phrazzld/marketplace-api/internal/redact"
	"github.com/phrazzld/marketplace-api/internal/store"
	"go.opentelemetry.io/otel/trace"
)

// stores bundles the repositories for the configured driver and releases
// their connections on close.
type stores struct {
	users    store.UserStore
	products store.ProductStore
	close    func(ctx context.Context) error
}

// openStores connects to the backing database selected by cfg.Driver.
func openStores(ctx context.Context, cfg config.DatabaseConfig, tracer trace.Tracer, log *slog.Logger) (*stores, error) {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	log = log.With("component", "database", "driver", cfg.Driver)

	switch cfg.Driver {
	case config.DriverMemory:
		log.Warn("using in-memory store, data will not survive a restart")
		return &stores{
			users:    memory.NewUserStore(tracer),
			products: memory.NewProductStore(tracer),
			close:    func(context.Context) error { return nil },
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", redact.String(cfg.URL), err)
		}
		log.Info("database connection established")
		return &stores{
			users:    postgres.NewPostgresUserStore(db),
			products: postgres.NewPostgresProductStore(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.URL, timeout)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", redact.String(cfg.URL), err)
		}
		db := client.Database(cfg.Name)

		indexCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := mongodb.EnsureIndexes(indexCtx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("failed to ensure indexes: %w", err)
		}
		log.Info("database connection established", "database", cfg.Name)
		return &stores{
			users:    mongodb.NewMongoUserStore(db),
			products: mongodb.NewMongoProductStore(db),
			close:    client.Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
