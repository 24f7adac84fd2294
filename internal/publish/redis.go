package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshot stores the corpus and its summaries as JSON strings under
// <prefix>:rfqs, <prefix>:suppliers, <prefix>:summary and
// <prefix>:supplier_summary, then points <prefix>:latest_run at the run.
// latest_run is written last so readers never see a run id before its data.
type RedisSnapshot struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSnapshot writes keys with ttl; zero keeps them until overwritten.
func NewRedisSnapshot(client *redis.Client, prefix string, ttl time.Duration) *RedisSnapshot {
	if prefix == "" {
		prefix = "datagen"
	}
	return &RedisSnapshot{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisSnapshot) Name() string { return "redis" }

// Key returns the full key for suffix.
func (r *RedisSnapshot) Key(suffix string) string {
	return r.prefix + ":" + suffix
}

func (r *RedisSnapshot) Publish(ctx context.Context, snap Snapshot) error {
	values := []struct {
		key   string
		value interface{}
	}{
		{"summary", snap.Summary},
		{"supplier_summary", snap.SupplierSummary},
		{"rfqs", nonNil(snap.RFQs)},
		{"suppliers", nonNil(snap.Suppliers)},
	}

	for _, v := range values {
		data, err := json.Marshal(v.value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", v.key, err)
		}
		if err := r.client.Set(ctx, r.Key(v.key), data, r.ttl).Err(); err != nil {
			return fmt.Errorf("set %s: %w", r.Key(v.key), err)
		}
	}

	if err := r.client.Set(ctx, r.Key("latest_run"), snap.RunID, r.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", r.Key("latest_run"), err)
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
