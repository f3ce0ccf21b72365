// Package pathcache keeps recently projected globe paths keyed by rotation.
//
// A rotating globe repeats itself every full turn, so once the rotation has
// wrapped, frames can reuse the path emitted for the same orientation.
package pathcache

import (
	"math"
	"sync"
	"sync/atomic"
)

// Cache is a thread-safe LRU cache with a fixed capacity.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*node[K, V]
	recency  list[K, V]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// New creates a cache holding at most capacity entries.
// A non-positive capacity yields nil; a nil cache always misses.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		return nil
	}
	return &Cache[K, V]{
		entries:  make(map[K]*node[K, V], capacity),
		capacity: capacity,
	}
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// create runs under the cache lock and must not use the cache.
// hit reports whether the value came from the cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) (v V, hit bool) {
	if c == nil {
		return create(), false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.recency.moveToFront(n)
		c.hits.Add(1)
		return n.value, true
	}
	c.misses.Add(1)

	v = create()
	for c.recency.len >= c.capacity {
		old := c.recency.removeOldest()
		delete(c.entries, old.key)
		c.evictions.Add(1)
	}
	n := &node[K, V]{key: key, value: v}
	c.recency.pushFront(n)
	c.entries[key] = n
	return v, false
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the current counters.
func (c *Cache[K, V]) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// RotationKey maps a rotation in degrees to a cache key. Rotations a full
// turn apart share a key, as do rotations within a microdegree of each other.
func RotationKey(deg float64) uint64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	const steps = 360_000_000 // microdegrees per turn
	k := math.Round(math.Mod(deg, 360) * 1e6)
	if k < 0 {
		k += steps
	}
	if k >= steps {
		k -= steps
	}
	return uint64(k)
}
