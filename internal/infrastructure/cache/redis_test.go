package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedis_RoundTripAndTTL(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	c := NewRedis(rdb, "test:", time.Minute)

	if err := c.Set(ctx, "category:1", item{ID: "1", Name: "Tech"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !mr.Exists("test:category:1") {
		t.Fatal("expected key under prefix")
	}
	if ttl := mr.TTL("test:category:1"); ttl != time.Minute {
		t.Errorf("ttl = %v, want 1m", ttl)
	}

	var got item
	found, err := c.Get(ctx, "category:1", &got)
	if err != nil || !found || got.Name != "Tech" {
		t.Fatalf("Get found=%v err=%v got=%+v", found, err, got)
	}

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "category:1", &got)
	if err != nil || found {
		t.Errorf("expected expiry, found=%v err=%v", found, err)
	}
}

func TestRedis_ClearOnlyTouchesPrefix(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	c := NewRedis(rdb, "test:", 0)

	_ = c.Set(ctx, "a", 1)
	_ = c.Set(ctx, "b", 2)
	_ = mr.Set("unrelated", "keep")

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if mr.Exists("test:a") || mr.Exists("test:b") {
		t.Error("prefixed keys should be gone")
	}
	if !mr.Exists("unrelated") {
		t.Error("keys outside the prefix must survive")
	}

	_ = c.Set(ctx, "c", 3)
	_ = c.Delete(ctx, "c")
	if mr.Exists("test:c") {
		t.Error("Delete should remove the key")
	}
}
