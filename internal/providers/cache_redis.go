package providers

import (
	"context"
	"errors"
	"time"

	"github.com/exotic-travel-booking/backend/internal/cache"
)

// RedisCache adapts the shared internal/cache.Cache client to the
// providers.Cache interface consumed by the planning engine.
type RedisCache struct {
	client *cache.Cache
}

// NewRedisCache wraps an already-constructed cache.Cache.
func NewRedisCache(client *cache.Cache) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string, dest any) error {
	err := r.client.Get(ctx, key, dest)
	if errors.Is(err, cache.ErrCacheMiss) {
		return ErrCacheMiss
	}
	return err
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl)
}

func (r *RedisCache) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	if delta == 1 {
		return r.client.Increment(ctx, key)
	}
	// go-redis exposes IncrBy only on the raw client; Increment+loop keeps
	// this adapter to the Cache methods already in use elsewhere.
	var total int64
	var err error
	for i := int64(0); i < delta; i++ {
		total, err = r.client.Increment(ctx, key)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
