package worker

// dlq.go — Dead Letter Queue
// Catalog events that still fail after the in-process retries land here.
// Cache keys self-heal via TTL, but a lost unit_updated event would lose its
// price-history row for good, so failed events are parked for redrive instead
// of dropped. Uses a Redis list per source queue: dlq:{original_queue}

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const DLQPrefix = "dlq:"

// DLQEntry wraps a failed job with metadata for debugging.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"` // ISO 8601
	Attempts      int             `json:"attempts"`
}

// SendToDLQ pushes a failed job to the dead letter queue.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, jobType string, payload json.RawMessage, reason string, attempts int) {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       jobType,
		Payload:       payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      attempts,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: failed to push to DLQ")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", jobType).
		Str("reason", reason).
		Int("attempts", attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength returns the number of entries in a DLQ for monitoring.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}

// RedriveDLQ moves up to max parked entries back onto their original queue,
// typically after the DB outage that parked them has been resolved. Entries
// that no longer parse are dropped with an error log rather than looping.
func RedriveDLQ(ctx context.Context, rdb *redis.Client, queue string, max int) (int, error) {
	dlqKey := DLQPrefix + queue
	moved := 0
	for moved < max {
		data, err := rdb.RPop(ctx, dlqKey).Bytes()
		if err == redis.Nil {
			break
		}
		if err != nil {
			return moved, err
		}

		var entry DLQEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: dropping unparseable entry")
			continue
		}

		encoded, err := json.Marshal(Job{Type: entry.JobType, Payload: entry.Payload})
		if err != nil {
			return moved, err
		}
		if err := rdb.LPush(ctx, queue, encoded).Err(); err != nil {
			return moved, err
		}
		moved++
	}
	if moved > 0 {
		log.Info().Int("count", moved).Str("queue", queue).Msg("dlq: entries redriven")
	}
	return moved, nil
}
