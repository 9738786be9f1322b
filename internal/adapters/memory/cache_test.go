package memory

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCache_SetGetDel(t *testing.T) {
	ctx := context.Background()
	c := New()

	var got []string
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatalf("expected miss on empty cache")
	}

	in := []string{"a", "b"}
	if err := c.Set(ctx, "k", in, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	in[0] = "mutated"

	ok, err := c.Get(ctx, "k", &got)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got[0] != "a" || len(got) != 2 {
		t.Fatalf("cached value aliased caller slice: %v", got)
	}

	_ = c.Del(ctx, "k")
	if ok, _ := c.Get(ctx, "k", &got); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestCache_TTL(t *testing.T) {
	ctx := context.Background()
	c := New()
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", 1, 10)
	_ = c.Set(ctx, "forever", 2, 0)

	now = now.Add(11 * time.Second)
	var v int
	if ok, _ := c.Get(ctx, "short", &v); ok {
		t.Fatalf("expected expiry")
	}
	if ok, _ := c.Get(ctx, "forever", &v); !ok || v != 2 {
		t.Fatalf("expected non-expiring entry, got ok=%v v=%d", ok, v)
	}
	if c.Len() != 1 {
		t.Fatalf("expired entry should be evicted, len=%d", c.Len())
	}
}

func TestCache_ExpiryKeepsConcurrentSet(t *testing.T) {
	ctx := context.Background()
	c := New()
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }
	_ = c.Set(ctx, "k", 1, 10)

	// the first clock read in Get happens after RUnlock; a writer lands there
	now = now.Add(11 * time.Second)
	replaced := false
	c.now = func() time.Time {
		if !replaced {
			replaced = true
			_ = c.Set(ctx, "k", 2, 0)
		}
		return now
	}

	var v int
	if ok, err := c.Get(ctx, "k", &v); !ok || err != nil || v != 2 {
		t.Fatalf("expected the fresh value, got ok=%v v=%d err=%v", ok, v, err)
	}
	if c.Len() != 1 {
		t.Fatalf("fresh entry was evicted, len=%d", c.Len())
	}
}

func TestCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = c.Set(ctx, "shared", i, 0)
			var v int
			_, _ = c.Get(ctx, "shared", &v)
		}(i)
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Fatalf("len=%d", c.Len())
	}
}
