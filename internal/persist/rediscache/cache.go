// Package rediscache adapts persist.Cache onto go-redis, the same client
// library this project's lineage already uses for conversation storage.
package rediscache

import (
	"context"
	"time"

	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Cache adapts a redis.Cmdable onto persist.Cache.
type Cache struct {
	rdb redis.Cmdable
}

func New(rdb redis.Cmdable) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errx.WrapRedis(err)
	}
	return b, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}

// DeletePattern scans for keys matching a glob pattern and removes them in
// batches. Used for session-scoped invalidation (§4.2); scanning rather than
// KEYS avoids blocking a shared Redis instance.
func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	batch := make([]string, 0, 100)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= 100 {
			if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
				return errx.WrapRedis(err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return errx.WrapRedis(err)
	}
	if len(batch) > 0 {
		if err := c.rdb.Del(ctx, batch...).Err(); err != nil {
			return errx.WrapRedis(err)
		}
	}
	return nil
}

// SwallowingGet is a convenience used by callers for whom a cache failure
// must degrade to a durable read rather than fail the request (§4.2:
// "cache failures are logged and swallowed").
func SwallowingGet(ctx context.Context, cache interface {
	Get(context.Context, string) ([]byte, bool, error)
}, key string) ([]byte, bool) {
	b, ok, err := cache.Get(ctx, key)
	if err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to durable store")
		return nil, false
	}
	return b, ok
}
