package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "restaurant_score/internal/adapters/redis"
)

func TestCache_RoundTripAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	var got []string
	if ok, err := c.Get(ctx, "reviews:subway", &got); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "reviews:subway", []string{"Good food, bad service."}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if !mr.Exists("restaurant_score:reviews:subway") {
		t.Fatalf("expected prefixed key in redis, keys=%v", mr.Keys())
	}

	ok, err := c.Get(ctx, "reviews:subway", &got)
	if err != nil || !ok || len(got) != 1 {
		t.Fatalf("expected hit, got ok=%v err=%v val=%v", ok, err, got)
	}

	mr.FastForward(61 * time.Second)
	if ok, _ := c.Get(ctx, "reviews:subway", &got); ok {
		t.Fatalf("expected expiry after ttl")
	}
}

func TestCache_NoExpiryAndDel(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	if err := c.Set(ctx, "k", 1, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("restaurant_score:k"); ttl != 0 {
		t.Fatalf("expected no ttl, got %v", ttl)
	}
	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	var v int
	if ok, _ := c.Get(ctx, "k", &v); ok {
		t.Fatalf("expected miss after del")
	}
}
