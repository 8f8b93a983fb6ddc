// Package cache implements a keyed TTL cache for narrative responses.
// Each category (practices, insights, patterns) gets its own typed
// instance; sub-keys are derived from the newest entry date plus entry
// count, so new check-ins naturally invalidate stale values.
package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

type item[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a mutex-guarded map with per-entry expiry. Eviction is lazy
// on read; Prune exists for the periodic sweep job. No capacity bound:
// a session holds a handful of keys.
type Cache[T any] struct {
	mu    sync.Mutex
	clock clockwork.Clock
	items map[string]item[T]
}

// New creates a cache using the real clock.
func New[T any]() *Cache[T] {
	return NewWithClock[T](clockwork.NewRealClock())
}

// NewWithClock creates a cache with an injected clock, for tests.
func NewWithClock[T any](clock clockwork.Clock) *Cache[T] {
	return &Cache[T]{
		clock: clock,
		items: make(map[string]item[T]),
	}
}

// Get returns the value for key if present and not expired. An expired
// entry is evicted before reporting a miss.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		var zero T
		return zero, false
	}
	if !c.clock.Now().Before(it.expiresAt) {
		delete(c.items, key)
		var zero T
		return zero, false
	}
	return it.value, true
}

// Set stores value under key for ttl.
func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item[T]{value: value, expiresAt: c.clock.Now().Add(ttl)}
}

// SetHours stores value with a TTL expressed in hours, matching how
// callers think about narrative freshness.
func (c *Cache[T]) SetHours(key string, value T, hours int) {
	c.Set(key, value, time.Duration(hours)*time.Hour)
}

// Prune removes every expired entry and returns how many were dropped.
func (c *Cache[T]) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	dropped := 0
	for k, it := range c.items {
		if !now.Before(it.expiresAt) {
			delete(c.items, k)
			dropped++
		}
	}
	return dropped
}

// Clear drops every entry, expired or not.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item[T])
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
