// Package cache is the short-TTL read cache in front of the managed store.
// Keys embed a process-wide revision counter that is bumped after every
// write, so a read issued after a write never sees a stale entry even though
// unexpired entries for older revisions may still linger.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revision is the monotonically increasing counter used purely for cache
// invalidation. It carries no meaning to the backend.
type Revision struct {
	n atomic.Int64
}

// Current returns the revision to embed in read keys.
func (r *Revision) Current() int64 {
	return r.n.Load()
}

// Bump advances the revision; call after any write.
func (r *Revision) Bump() int64 {
	return r.n.Add(1)
}

// Key builds a cache key from a query identifier, the current revision, and
// any query parameters.
func Key(queryID string, rev int64, parts ...string) string {
	elems := append([]string{"docsrouter", "query", queryID, "rev", strconv.FormatInt(rev, 10)}, parts...)
	return strings.Join(elems, ":")
}

// Cache is the injected read-cache abstraction. A miss and an unavailable
// backend look the same to callers; reads then fall through to the store.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// RedisCache implements Cache on Redis with a fixed expiry.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache connects to Redis and verifies it is reachable.
func NewRedisCache(ctx context.Context, addr, password string, ttl time.Duration, logger *slog.Logger) (*RedisCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}, nil
}

// NewRedisCacheFromClient wraps an existing client; used by tests.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", "key", key, "error", err)
		}
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
