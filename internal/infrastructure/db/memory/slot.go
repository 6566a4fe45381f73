package memory

import (
	"bytes"
	"context"
	"sync"
)

// Slot is a process-local ports.Slot.
type Slot struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewSlot() *Slot {
	return &Slot{data: make(map[string][]byte)}
}

func (s *Slot) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return bytes.Clone(v), ok, nil
}

func (s *Slot) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = bytes.Clone(value)
	return nil
}

func (s *Slot) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Dedup is a process-local ports.DedupChecker. Keys never expire.
type Dedup struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

func (d *Dedup) IsDuplicate(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[key]
	return ok, nil
}

func (d *Dedup) Mark(_ context.Context, key string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[key] = struct{}{}
	return nil
}
