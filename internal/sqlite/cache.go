package sqlite

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// volatileTTL is the shorter TTL for reads whose underlying data changes
// often (sales, expenses, history lists).
const volatileTTL = 60 * time.Second

// memoCache is a bounded read-through memoization cache. Losing it never
// changes results, only latency. It synchronizes itself so cached reads can
// share the store's read lock.
type memoCache struct {
	mu         sync.Mutex
	defaultTTL time.Duration
	maxEntries int
	entries    map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	expires time.Time
}

func newMemoCache(defaultTTL time.Duration, maxEntries int) *memoCache {
	return &memoCache{
		defaultTTL: defaultTTL,
		maxEntries: maxEntries,
		entries:    make(map[string]cacheEntry),
	}
}

// cacheKey builds a deterministic key from an operation name and its
// arguments.
func cacheKey(op string, args ...any) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, op)
	for _, a := range args {
		parts = append(parts, fmt.Sprintf("%v", a))
	}
	return strings.Join(parts, ":")
}

// get returns the entry for key when present and unexpired. Expired entries
// are evicted on the way out.
func (c *memoCache) get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// set stores value under key. A non-positive ttl means the default. When the
// cache is full, the entry with the nearest expiry is evicted first.
func (c *memoCache) set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		var nearest string
		var nearestAt time.Time
		for k, e := range c.entries {
			if nearest == "" || e.expires.Before(nearestAt) {
				nearest, nearestAt = k, e.expires
			}
		}
		delete(c.entries, nearest)
	}

	c.entries[key] = cacheEntry{value: value, expires: time.Now().Add(ttl)}
}

// invalidate removes every entry whose key contains pattern; an empty
// pattern clears the cache. Returns the number of entries removed.
func (c *memoCache) invalidate(pattern string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if pattern == "" {
		n := len(c.entries)
		c.entries = make(map[string]cacheEntry)
		return n
	}
	n := 0
	for k := range c.entries {
		if strings.Contains(k, pattern) {
			delete(c.entries, k)
			n++
		}
	}
	return n
}

func (c *memoCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cached is the cache-aside helper wrapping read operations: check, compute
// on miss, store on success. Only successful computations are cached.
func cached[T any](c *memoCache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if v, ok := c.get(key); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	c.set(key, v, ttl)
	return v, nil
}
