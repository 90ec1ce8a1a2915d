package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a small read-through cache over redis. A nil *Cache is valid and
// always loads from source, so the server runs fine without redis.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

func New(addr, password string, db int) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

// GetOrLoad returns the cached bytes for key, loading and storing them on a
// miss. Concurrent misses for the same key are collapsed to one load.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if c == nil {
		return load(ctx)
	}
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		return b, nil
	}
	v, err, _ := c.sf.Do(key, func() (any, error) {
		b, e := load(ctx)
		if e != nil {
			return nil, e
		}
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// GetOrLoadJSON is GetOrLoad with JSON marshaling of a typed value
func GetOrLoadJSON[T any](c *Cache, ctx context.Context, key string, ttl time.Duration, load func(context.Context) (*T, error)) (*T, error) {
	b, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
