package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"unitpos/internal/model"
	"unitpos/internal/repository"
)

// SnapshotCache drops cached catalog views for a product. The Redis
// implementation is below; tests substitute a stub.
type SnapshotCache interface {
	InvalidateProduct(ctx context.Context, productID string) error
}

// CatalogWorker applies the side effects of catalog mutations: it drops the
// cached unit snapshot and resolved prices for the affected product, and
// records a price-history row when an update changed a unit's overrides.
type CatalogWorker struct {
	cache   SnapshotCache
	history repository.HistoryRepository
}

func NewCatalogWorker(cache SnapshotCache, history repository.HistoryRepository) *CatalogWorker {
	return &CatalogWorker{cache: cache, history: history}
}

func (w *CatalogWorker) Handle(ctx context.Context, ev CatalogEvent) error {
	if err := w.cache.InvalidateProduct(ctx, ev.ProductID); err != nil {
		return err
	}

	if ev.Kind == "unit_updated" && ev.PriceChanged() {
		unitID, err := uuid.Parse(ev.UnitID)
		if err != nil {
			return fmt.Errorf("bad unit_id in event: %w", err)
		}
		productID, err := uuid.Parse(ev.ProductID)
		if err != nil {
			return fmt.Errorf("bad product_id in event: %w", err)
		}
		return w.history.Create(ctx, &model.UnitPriceHistory{
			UnitID:          unitID,
			ProductID:       productID,
			RetailBefore:    ev.RetailBefore,
			RetailAfter:     ev.RetailAfter,
			WholesaleBefore: ev.WholesaleBefore,
			WholesaleAfter:  ev.WholesaleAfter,
			Reason:          "manual",
		})
	}
	return nil
}

// RedisSnapshotCache deletes every cached key derived from a product's
// catalog: unit snapshots (units:<pid>:*) and resolved prices (price:<pid>:*).
type RedisSnapshotCache struct {
	rdb *redis.Client
}

func NewRedisSnapshotCache(rdb *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{rdb: rdb}
}

func (c *RedisSnapshotCache) InvalidateProduct(ctx context.Context, productID string) error {
	for _, pattern := range []string{"units:" + productID + ":*", "price:" + productID + ":*"} {
		iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
				log.Warn().Err(err).Str("key", iter.Val()).Msg("cache invalidation failed")
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}
