package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Slot stores carts and sessions as plain string values. A zero ttl keeps
// values forever; otherwise every write refreshes the expiry.
type Slot struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlot(client *redis.Client, ttl time.Duration) *Slot {
	return &Slot{client: client, ttl: ttl}
}

func (s *Slot) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("slot get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Slot) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("slot set %s: %w", key, err)
	}
	return nil
}

func (s *Slot) Clear(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("slot clear %s: %w", key, err)
	}
	return nil
}
