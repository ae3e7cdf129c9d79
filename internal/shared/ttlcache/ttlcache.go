// Package ttlcache provides small time-to-live caches with read-time
// staleness checks. Values are never evicted in the background; a slot is
// simply ignored once its age reaches the TTL.
package ttlcache

import (
	"sync"
	"time"
)

// Clock supplies the current time. Override in tests for deterministic
// freshness checks.
type Clock func() time.Time

// Slot caches a single payload with one timestamp.
type Slot[T any] struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   Clock
	value T
	ts    time.Time
	set   bool
}

// NewSlot builds a single-value cache with the given TTL.
func NewSlot[T any](ttl time.Duration) *Slot[T] {
	return &Slot[T]{ttl: ttl, now: time.Now}
}

// WithClock overrides the time source.
func (s *Slot[T]) WithClock(now Clock) *Slot[T] {
	if now != nil {
		s.now = now
	}
	return s
}

// Get returns the cached value when it exists and is younger than the TTL.
func (s *Slot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.set || s.now().Sub(s.ts) >= s.ttl {
		var zero T
		return zero, false
	}
	return s.value, true
}

// Put stores the value with the current timestamp.
func (s *Slot[T]) Put(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.ts = s.now()
	s.set = true
}

// Invalidate drops the cached value.
func (s *Slot[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	s.value = zero
	s.set = false
}

type entry[V any] struct {
	value V
	ts    time.Time
}

// Keyed caches independent values per key, each with its own timestamp.
type Keyed[K comparable, V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[K]entry[V]
}

// NewKeyed builds a per-key cache with the given TTL.
func NewKeyed[K comparable, V any](ttl time.Duration) *Keyed[K, V] {
	return &Keyed[K, V]{ttl: ttl, now: time.Now, entries: map[K]entry[V]{}}
}

// WithClock overrides the time source.
func (c *Keyed[K, V]) WithClock(now Clock) *Keyed[K, V] {
	if now != nil {
		c.now = now
	}
	return c
}

// Get returns the fresh value for key, if any. Stale entries are removed on
// the read path.
func (c *Keyed[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	fresh := ok && c.now().Sub(e.ts) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return e.value, true
	}
	if ok {
		c.mu.Lock()
		if e2, still := c.entries[key]; still && c.now().Sub(e2.ts) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
	}
	var zero V
	return zero, false
}

// Put stores the value for key with the current timestamp.
func (c *Keyed[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, ts: c.now()}
}

// Invalidate removes the entry for key, if present.
func (c *Keyed[K, V]) Invalidate(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of stored entries, stale ones included.
func (c *Keyed[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
