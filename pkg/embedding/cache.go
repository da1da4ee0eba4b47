package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// VectorCache stores query vectors by key. A miss is (nil, false, nil).
type VectorCache interface {
	Get(ctx context.Context, key string) ([]float32, bool, error)
	Set(ctx context.Context, key string, vec []float32) error
}

type MemoryCache struct {
	cache *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	// Expired items are purged every 10 minutes
	return &MemoryCache{cache: cache.New(ttl, 10*time.Minute)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	if x, found := c.cache.Get(key); found {
		return x.([]float32), true, nil
	}
	return nil, false, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, vec []float32) error {
	c.cache.Set(key, vec, cache.DefaultExpiration)
	return nil
}

type RedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl, prefix: "contactsearch:embedding:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var vec []float32
	if err := json.Unmarshal(raw, &vec); err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, vec []float32) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err()
}
