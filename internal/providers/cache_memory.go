package providers

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process providers.Cache backed by go-cache, used for
// tests and for single-instance deployments without Redis.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache builds a cache with the given default TTL and cleanup cadence.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *MemoryCache) Get(ctx context.Context, key string, dest any) error {
	raw, ok := m.store.Get(key)
	if !ok {
		return ErrCacheMiss
	}
	data, ok := raw.([]byte)
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *MemoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, data, ttl)
	return nil
}

func (m *MemoryCache) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	if err := m.store.Add(key, int64(0), gocache.NoExpiration); err != nil {
		// already present: fall through to increment
	}
	newVal, err := m.store.IncrementInt64(key, delta)
	if err != nil {
		m.store.Set(key, delta, gocache.NoExpiration)
		return delta, nil
	}
	return newVal, nil
}
