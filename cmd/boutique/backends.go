package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mgluxury/boutique/internal/api/handler"
	"github.com/mgluxury/boutique/internal/core/ports"
	"github.com/mgluxury/boutique/internal/infrastructure/config"
	"github.com/mgluxury/boutique/internal/infrastructure/db/memory"
	mongodb "github.com/mgluxury/boutique/internal/infrastructure/db/mongo"
	redisdb "github.com/mgluxury/boutique/internal/infrastructure/db/redis"
	"github.com/mgluxury/boutique/internal/infrastructure/db/sqlite"
)

// backends holds the stores selected by the driver settings.
type backends struct {
	categories ports.CategoryRepository
	products   ports.ProductRepository
	orders     ports.OrderRepository
	items      ports.OrderItemRepository
	events     ports.OrderEventRepository
	users      ports.UserRepository

	slot  ports.Slot
	dedup ports.DedupChecker

	// ephemeral is true when the catalog lives in process memory and must
	// be seeded on every start.
	ephemeral bool
	health    map[string]handler.Pinger
	closers   []func(context.Context) error
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{health: make(map[string]handler.Pinger)}

	switch cfg.Drivers.Catalog {
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Disconnect)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			b.close(ctx)
			return nil, err
		}
		b.categories = mongodb.NewCategoryRepository(db)
		b.products = mongodb.NewProductRepository(db)
		b.orders = mongodb.NewOrderRepository(db)
		b.items = mongodb.NewOrderItemRepository(db)
		b.events = mongodb.NewEventRepository(db)
		b.users = mongodb.NewUserRepository(db)
		b.health["mongodb"] = handler.PingFunc(func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		})
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
	default:
		store := memory.NewStore()
		b.categories = store.Categories()
		b.products = store.Products()
		b.orders = store.Orders()
		b.items = store.OrderItems()
		b.events = store.Events()
		b.users = store.Users()
		b.ephemeral = true
		log.Warn().Msg("catalog kept in memory, data is lost on restart")
	}

	switch cfg.Drivers.Slot {
	case config.DriverRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			b.close(ctx)
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return rdb.Close() })
		b.slot = redisdb.NewSlot(rdb, cfg.Shop.CartTTL)
		b.dedup = redisdb.NewDedupChecker(rdb, cfg.Redis.DedupTTL)
		b.health["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	case config.DriverSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			b.close(ctx)
			return nil, err
		}
		b.closers = append(b.closers, func(context.Context) error { return s.Close() })
		b.slot = s
		b.dedup = memory.NewDedup()
		b.health["sqlite"] = s
		log.Info().Str("path", cfg.SQLite.Path).Msg("opened sqlite slot")
	default:
		b.slot = memory.NewSlot()
		b.dedup = memory.NewDedup()
	}

	return b, nil
}

// close releases connections in reverse opening order.
func (b *backends) close(ctx context.Context) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i](ctx)
	}
}
