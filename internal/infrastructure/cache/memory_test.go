package cache

import (
	"context"
	"testing"
	"time"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(0)

	if err := c.Set(ctx, "college:1", item{ID: "1", Name: "MIT"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	var got item
	found, err := c.Get(ctx, "college:1", &got)
	if err != nil || !found {
		t.Fatalf("Get found=%v err=%v", found, err)
	}
	if got.Name != "MIT" {
		t.Errorf("name = %q", got.Name)
	}

	_ = c.Delete(ctx, "college:1")
	found, _ = c.Get(ctx, "college:1", &got)
	if found {
		t.Error("expected miss after Delete")
	}
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemory(0)
	c.nowFunc = func() time.Time { return now }

	_ = c.Set(ctx, "a", 1)
	_ = c.SetTTL(ctx, "b", 2, time.Second)

	now = now.Add(2 * time.Second)
	var v int
	if found, _ := c.Get(ctx, "b", &v); found {
		t.Error("b should have expired")
	}
	if found, _ := c.Get(ctx, "a", &v); !found || v != 1 {
		t.Errorf("a found=%v v=%d, want still cached under default TTL", found, v)
	}

	now = now.Add(DefaultTTL)
	if found, _ := c.Get(ctx, "a", &v); found {
		t.Error("a should expire after the default TTL")
	}
	if c.Len() != 0 {
		t.Errorf("expired entries should be dropped on read, len=%d", c.Len())
	}
}

func TestMemory_LastWriteWinsAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)
	_ = c.Set(ctx, "k", "first")
	_ = c.Set(ctx, "k", "second")

	var s string
	if _, err := c.Get(ctx, "k", &s); err != nil || s != "second" {
		t.Errorf("got %q err=%v, want second", s, err)
	}

	_ = c.Set(ctx, "other", "x")
	_ = c.Clear(ctx)
	if c.Len() != 0 {
		t.Errorf("len after Clear = %d", c.Len())
	}
}

func TestMemory_StoresCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(0)
	in := []string{"a", "b"}
	_ = c.Set(ctx, "k", in)
	in[0] = "mutated"

	var out []string
	_, _ = c.Get(ctx, "k", &out)
	if out[0] != "a" {
		t.Errorf("cache shares memory with caller: %v", out)
	}
}
