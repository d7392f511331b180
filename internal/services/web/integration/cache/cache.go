// Package cache holds short-lived copies of auth lookups made by the web
// service.
package cache

import (
	"sync"
	"time"
)

// DefaultSessionTTL bounds how stale a cached session may be.
const DefaultSessionTTL = 5 * time.Second

const maxEntries = 4096

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a concurrency-safe map whose entries expire after a fixed lifetime.
type TTL[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[V]
}

// NewTTL builds a cache with the given lifetime. A non-positive ttl disables
// caching.
func NewTTL[V any](ttl time.Duration) *TTL[V] {
	return &TTL[V]{ttl: ttl, now: time.Now, entries: map[string]entry[V]{}}
}

// Get returns the live value for key.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil || c.ttl <= 0 {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if !c.now().Before(cached.expiresAt) {
		delete(c.entries, key)
		return zero, false
	}
	return cached.value, true
}

// Put stores value under key. When the cache is full, expired entries are
// dropped first and then the whole map if that was not enough.
func (c *TTL[V]) Put(key string, value V) {
	if c == nil || c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if len(c.entries) >= maxEntries {
		for k, cached := range c.entries {
			if !now.Before(cached.expiresAt) {
				delete(c.entries, k)
			}
		}
		if len(c.entries) >= maxEntries {
			c.entries = map[string]entry[V]{}
		}
	}
	c.entries[key] = entry[V]{value: value, expiresAt: now.Add(c.ttl)}
}

// Invalidate removes key.
func (c *TTL[V]) Invalidate(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired or not.
func (c *TTL[V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
