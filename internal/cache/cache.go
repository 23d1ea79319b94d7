// Package cache provides a bounded in-memory key/value store with
// pluggable eviction strategies. It underlies the embedding cache and
// the completion-response cache.
package cache

import (
	"sync"
	"time"
)

// Strategy selects which entry to evict when the cache is full.
type Strategy string

// Available eviction strategies.
const (
	// LRU evicts the least-recently-accessed entry.
	LRU Strategy = "lru"

	// LFU evicts the entry with the lowest access count.
	LFU Strategy = "lfu"

	// TTL evicts the earliest-expiring entry, or the earliest-created
	// if none has expired.
	TTL Strategy = "ttl"

	// FIFO evicts the earliest-created entry.
	FIFO Strategy = "fifo"
)

// IsValid returns true if the strategy is recognised.
func (s Strategy) IsValid() bool {
	switch s {
	case LRU, LFU, TTL, FIFO:
		return true
	default:
		return false
	}
}

// entry holds a cached value with its bookkeeping metadata.
type entry struct {
	key          string
	value        any
	createdAt    time.Time
	lastAccessed time.Time
	accessCount  int64
	ttl          time.Duration // zero means no expiry
	sizeBytes    int64
}

// expired reports whether the entry's TTL has elapsed at now.
func (e *entry) expired(now time.Time) bool {
	if e.ttl <= 0 {
		return false
	}
	return now.After(e.createdAt.Add(e.ttl))
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	SizeBytes int64
	MaxSize   int
	MaxBytes  int64
	Strategy  Strategy
}

// HitRate returns the hit percentage over all lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// Config configures a cache instance.
type Config struct {
	// MaxSize is the item-count bound (default 1000).
	MaxSize int

	// MaxBytes is the total estimated-size bound (default 100 MiB).
	MaxBytes int64

	// Strategy is the eviction policy (default LRU).
	Strategy Strategy

	// DefaultTTL applies to entries set without an explicit TTL.
	// Zero means entries never expire.
	DefaultTTL time.Duration
}

// Cache is a bounded, thread-safe key/value store. All mutating
// operations serialize under a single mutex, so check-then-evict-then-
// insert sequences are atomic with respect to concurrent callers.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]*entry
	maxSize    int
	maxBytes   int64
	strategy   Strategy
	defaultTTL time.Duration
	usedBytes  int64

	hits      int64
	misses    int64
	evictions int64

	// now is swappable so TTL behaviour is testable without sleeping.
	now func() time.Time
}

// New creates a cache with the given configuration.
func New(cfg Config) *Cache {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 1000
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 100 << 20
	}
	if !cfg.Strategy.IsValid() {
		cfg.Strategy = LRU
	}

	return &Cache{
		entries:    make(map[string]*entry),
		maxSize:    cfg.MaxSize,
		maxBytes:   cfg.MaxBytes,
		strategy:   cfg.Strategy,
		defaultTTL: cfg.DefaultTTL,
		now:        time.Now,
	}
}

// SetClock replaces the cache's time source. Useful for testing expiry.
func (c *Cache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Get returns the value for key, or (nil, false) on miss or expiry.
// Expired entries are swept before answering so expired data is never
// observably returned.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweepExpired(now)

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}

	e.lastAccessed = now
	e.accessCount++
	c.hits++
	return e.value, true
}

// Set stores value under key. A zero ttl uses the cache's default TTL.
// Returns false without storing when the item's estimated size alone
// exceeds the byte budget; the caller proceeds uncached.
func (c *Cache) Set(key string, value any, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := estimateSize(value)
	if size > c.maxBytes {
		return false
	}

	if old, ok := c.entries[key]; ok {
		c.removeLocked(old.key)
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	now := c.now()
	c.entries[key] = &entry{
		key:          key,
		value:        value,
		createdAt:    now,
		lastAccessed: now,
		accessCount:  1,
		ttl:          ttl,
		sizeBytes:    size,
	}
	c.usedBytes += size

	c.evictIfNeeded(now)
	return true
}

// Delete removes key from the cache. Returns true if it was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.removeLocked(key)
	return true
}

// Exists reports whether key is present and unexpired.
func (c *Cache) Exists(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepExpired(c.now())
	_, ok := c.entries[key]
	return ok
}

// Keys returns all unexpired keys.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sweepExpired(c.now())
	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes all entries. Counters are preserved.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry)
	c.usedBytes = 0
}

// Len returns the number of entries, including any not yet swept.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      len(c.entries),
		SizeBytes: c.usedBytes,
		MaxSize:   c.maxSize,
		MaxBytes:  c.maxBytes,
		Strategy:  c.strategy,
	}
}

// sweepExpired removes every TTL-expired entry. Caller holds the lock.
func (c *Cache) sweepExpired(now time.Time) {
	for key, e := range c.entries {
		if e.expired(now) {
			c.removeLocked(key)
		}
	}
}

// evictIfNeeded evicts entries until both bounds hold. Caller holds
// the lock.
func (c *Cache) evictIfNeeded(now time.Time) {
	for len(c.entries) > c.maxSize || c.usedBytes > c.maxBytes {
		victim := c.chooseVictim(now)
		if victim == "" {
			return
		}
		c.removeLocked(victim)
		c.evictions++
	}
}

// chooseVictim picks the key to evict under the configured strategy.
// A pure selection function over the current key set; swapping the
// strategy affects eviction order only, never correctness.
func (c *Cache) chooseVictim(now time.Time) string {
	if len(c.entries) == 0 {
		return ""
	}

	switch c.strategy {
	case LFU:
		return c.minKey(func(e *entry) int64 { return e.accessCount })
	case TTL:
		// Earliest-expiring expired entry first, else earliest-created.
		var victim string
		var earliest time.Time
		for k, e := range c.entries {
			if !e.expired(now) {
				continue
			}
			if victim == "" || e.createdAt.Before(earliest) {
				victim = k
				earliest = e.createdAt
			}
		}
		if victim != "" {
			return victim
		}
		return c.minTimeKey(func(e *entry) time.Time { return e.createdAt })
	case FIFO:
		return c.minTimeKey(func(e *entry) time.Time { return e.createdAt })
	default: // LRU
		return c.minTimeKey(func(e *entry) time.Time { return e.lastAccessed })
	}
}

// minKey returns the key with the smallest int64 metric.
func (c *Cache) minKey(metric func(*entry) int64) string {
	var victim string
	var best int64
	for k, e := range c.entries {
		v := metric(e)
		if victim == "" || v < best {
			victim = k
			best = v
		}
	}
	return victim
}

// minTimeKey returns the key with the earliest time metric.
func (c *Cache) minTimeKey(metric func(*entry) time.Time) string {
	var victim string
	var best time.Time
	for k, e := range c.entries {
		v := metric(e)
		if victim == "" || v.Before(best) {
			victim = k
			best = v
		}
	}
	return victim
}

// removeLocked deletes key and updates the byte accounting. Caller
// holds the lock.
func (c *Cache) removeLocked(key string) {
	if e, ok := c.entries[key]; ok {
		c.usedBytes -= e.sizeBytes
		delete(c.entries, key)
	}
}
