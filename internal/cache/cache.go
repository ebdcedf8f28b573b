// ABOUTME: In-memory query cache with TTL expiration and invalidation
// ABOUTME: De-duplicates concurrent fetches per key using singleflight

package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache is a process-wide query cache shared across commands. Mutating one
// key never affects unrelated keys. When two writes race, the last Set wins,
// matching the order server responses arrive in.
type Cache struct {
	store sync.Map
	ttl   time.Duration
	group singleflight.Group
}

func New(ttl time.Duration) *Cache {
	c := &Cache{
		ttl: ttl,
	}
	go c.startCleanup()
	return c
}

func (c *Cache) Get(key string) (interface{}, bool) {
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}

	e := val.(entry)
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return nil, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache) Set(key string, value interface{}) {
	e := entry{
		data:      value,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.store.Store(key, e)
	slog.Debug("Cache set", "key", key, "ttl", c.ttl)
}

// Invalidate marks a key stale by removing it. The next read for the key
// must go back to the network; stale data is never served past this point.
func (c *Cache) Invalidate(key string) {
	c.store.Delete(key)
	slog.Debug("Cache invalidated", "key", key)
}

// GetOrFetch returns the cached value for key, or runs fetch to populate it.
// Concurrent callers for the same key converge on a single fetch and a single
// cache write. Fetch errors are returned to every waiting caller and cache
// nothing.
func (c *Cache) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (interface{}, error)) (interface{}, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Another caller may have won the flight and written already.
		if val, ok := c.Get(key); ok {
			return val, nil
		}
		val, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, val)
		return val, nil
	})
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (c *Cache) startCleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.store.Range(func(key, val interface{}) bool {
			e := val.(entry)
			if now.After(e.expiresAt) {
				c.store.Delete(key)
			}
			return true
		})
	}
}
