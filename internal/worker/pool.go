package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueCatalogEvents = "jobs:catalog_events"

// maxEventAttempts bounds the in-process retries of a catalog event before it
// is parked in the DLQ.
const maxEventAttempts = 3

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CatalogEvent describes a unit catalog mutation. The worker pool consumes
// these to invalidate cached snapshots and, when prices changed, to append
// immutable price-history rows.
type CatalogEvent struct {
	Kind      string `json:"kind"` // unit_created | unit_updated | unit_deleted | product_updated
	ProductID string `json:"product_id"`
	UnitID    string `json:"unit_id,omitempty"`

	// Price override values around an update; nil on non-price events.
	RetailBefore    *int64 `json:"retail_before,omitempty"`
	RetailAfter     *int64 `json:"retail_after,omitempty"`
	WholesaleBefore *int64 `json:"wholesale_before,omitempty"`
	WholesaleAfter  *int64 `json:"wholesale_after,omitempty"`
}

// PriceChanged reports whether the event carries a price override change.
func (e *CatalogEvent) PriceChanged() bool {
	return !equalCents(e.RetailBefore, e.RetailAfter) ||
		!equalCents(e.WholesaleBefore, e.WholesaleAfter)
}

func equalCents(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueCatalogEvent pushes a catalog mutation event. Best effort: callers
// fire and forget, a lost event only delays cache expiry until TTL.
func (d *Dispatcher) EnqueueCatalogEvent(ctx context.Context, ev CatalogEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	job := Job{Type: "catalog_event", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueCatalogEvents, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the catalog event
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, w *CatalogWorker, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, w, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, w *CatalogWorker, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueCatalogEvents).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, w, result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, w *CatalogWorker, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "catalog_event":
		var ev CatalogEvent
		if err := json.Unmarshal(job.Payload, &ev); err != nil {
			log.Error().Err(err).Msg("failed to unmarshal catalog event")
			return
		}
		// A unit_updated event carries the only record of a price change, so
		// a failed event is retried and then parked, never dropped.
		err := withRetry(ctx, maxEventAttempts, func(int) error {
			return w.Handle(ctx, ev)
		})
		if err != nil {
			log.Error().Err(err).Str("kind", ev.Kind).Str("product_id", ev.ProductID).
				Msg("catalog event failed, moving to DLQ")
			SendToDLQ(ctx, rdb, QueueCatalogEvents, job.Type, job.Payload, err.Error(), maxEventAttempts)
		}
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type")
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
