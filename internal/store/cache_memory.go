package store

import (
	"context"
	"sync"
)

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache returns a non-durable [LocalCache], used when no cache file
// is configured and in tests.
func NewMemoryCache() LocalCache {
	return &memoryCache{entries: make(map[string]string)}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}
