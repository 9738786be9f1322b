// Package memory is a process-wide domain.Cache. Values are stored as JSON so
// callers never share backing arrays with the cache.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"restaurant_score/internal/adapters/observability"
)

type entry struct {
	b   []byte
	exp time.Time // zero: never expires
}

type Cache struct {
	mu  sync.RWMutex
	m   map[string]entry
	now func() time.Time
}

func New() *Cache { return &Cache{m: map[string]entry{}, now: time.Now} }

func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if ok && c.expired(e) {
		c.mu.Lock()
		// a Set may have replaced the entry since RUnlock
		if cur, still := c.m[key]; still && c.expired(cur) {
			delete(c.m, key)
			ok = false
		} else {
			e, ok = cur, still
		}
		c.mu.Unlock()
	}
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.b, dst)
}

func (c *Cache) expired(e entry) bool { return !e.exp.IsZero() && c.now().After(e.exp) }

// Set stores v; ttlSec <= 0 keeps it for the life of the process.
func (c *Cache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e := entry{b: b}
	if ttlSec > 0 {
		e.exp = c.now().Add(time.Duration(ttlSec) * time.Second)
	}
	c.mu.Lock()
	c.m[key] = e
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
	observability.ObserveCache("memory", "del")
	return nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
