package ports

import "context"

// Slot is a durable key-value cell store. Carts and identities are written
// through to it on every mutation and read back at startup.
type Slot interface {
	// Get returns the stored bytes and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
}

// DedupChecker abstracts the idempotency store for status events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string) error
}
