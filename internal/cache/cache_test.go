package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCacheFromClient(client, ttl, nil), mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 10*time.Second)

	t.Run("miss then hit", func(t *testing.T) {
		if _, ok := c.Get(ctx, "k"); ok {
			t.Fatal("expected miss on empty cache")
		}
		c.Set(ctx, "k", "v")
		got, ok := c.Get(ctx, "k")
		if !ok || got != "v" {
			t.Fatalf("Get = (%q, %v), want (v, true)", got, ok)
		}
	})

	t.Run("entries expire after the ttl", func(t *testing.T) {
		c.Set(ctx, "short", "lived")
		mr.FastForward(11 * time.Second)
		if _, ok := c.Get(ctx, "short"); ok {
			t.Error("expected entry to expire")
		}
	})
}

func TestRevisionInvalidation(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t, time.Minute)
	var rev Revision

	key := Key("records", rev.Current(), "All", "All")
	c.Set(ctx, key, "stale listing")

	// a write bumps the revision; the next read uses a fresh key and misses
	rev.Bump()
	after := Key("records", rev.Current(), "All", "All")
	if after == key {
		t.Fatal("revision bump must change the cache key")
	}
	if _, ok := c.Get(ctx, after); ok {
		t.Error("expected miss under the new revision")
	}
}

func TestKey(t *testing.T) {
	got := Key("prompts", 3, "invoice")
	want := "docsrouter:query:prompts:rev:3:invoice"
	if got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}

func TestRevisionMonotonic(t *testing.T) {
	var rev Revision
	if rev.Current() != 0 {
		t.Fatalf("initial revision = %d, want 0", rev.Current())
	}
	last := int64(0)
	for i := 0; i < 5; i++ {
		n := rev.Bump()
		if n <= last {
			t.Fatalf("revision not increasing: %d after %d", n, last)
		}
		last = n
	}
}
