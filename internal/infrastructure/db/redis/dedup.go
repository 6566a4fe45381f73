package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = time.Hour

// DedupChecker remembers processed order events so redelivered webhooks are
// dropped. Keys are built by the caller (dedup:order:<id>:<status>:<unix>).
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker wraps client. A non-positive ttl falls back to one hour.
func NewDedupChecker(client *redis.Client, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

func (d *DedupChecker) IsDuplicate(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check %s: %w", key, err)
	}
	return n > 0, nil
}

// Mark records key as processed. An existing mark keeps its original expiry.
func (d *DedupChecker) Mark(ctx context.Context, key string) error {
	if err := d.client.SetNX(ctx, key, time.Now().Unix(), d.ttl).Err(); err != nil {
		return fmt.Errorf("dedup mark %s: %w", key, err)
	}
	return nil
}
