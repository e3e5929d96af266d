package redisad

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

type payload struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	s := miniredis.RunT(t)
	return New(s.Addr(), "", 0)
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var got payload
	ok, err := c.Get(ctx, "comparison:1", &got)
	if err != nil {
		t.Fatalf("get empty: %v", err)
	}
	if ok {
		t.Fatal("hit on empty cache")
	}

	want := payload{Name: "Hilton Tokyo", Total: 700}
	if err := c.Set(ctx, "comparison:1", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, err = c.Get(ctx, "comparison:1", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("roundtrip: got %+v want %+v", got, want)
	}
}

func TestCacheDel(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "comparisons:20", payload{Name: "x"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := c.Del(ctx, "comparisons:20"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var got payload
	if ok, _ := c.Get(ctx, "comparisons:20", &got); ok {
		t.Fatal("key survived delete")
	}
	// deleting a missing key is not an error
	if err := c.Del(ctx, "comparisons:20"); err != nil {
		t.Fatalf("del missing: %v", err)
	}
}

func TestCacheTTLExpires(t *testing.T) {
	s := miniredis.RunT(t)
	c := New(s.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", payload{Name: "x"}, 1); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.FastForward(2 * time.Second)

	var got payload
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatal("key survived its TTL")
	}
}
