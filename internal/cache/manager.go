package cache

import (
	"sort"
	"sync"
	"time"
)

// Well-known cache names.
const (
	// EmbeddingsCache holds embedding vectors keyed by content
	// fingerprint.
	EmbeddingsCache = "embeddings"

	// CompletionsCache holds completion responses keyed by prompt
	// fingerprint.
	CompletionsCache = "completions"

	// AnalysisCache holds structured policy analysis results.
	AnalysisCache = "analysis"
)

// Manager owns a set of independently configured named cache
// instances. Instances do not share eviction state.
type Manager struct {
	mu     sync.Mutex
	caches map[string]*Cache
}

// NewManager creates an empty cache manager.
func NewManager() *Manager {
	return &Manager{caches: make(map[string]*Cache)}
}

// Create returns the named cache, creating it with cfg on first use.
// Subsequent calls ignore cfg and return the existing instance.
func (m *Manager) Create(name string, cfg Config) *Cache {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.caches[name]; ok {
		return c
	}
	c := New(cfg)
	m.caches[name] = c
	return c
}

// Get returns the named cache, or nil if it was never created.
func (m *Manager) Get(name string) *Cache {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.caches[name]
}

// ClearAll empties every managed cache.
func (m *Manager) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.caches {
		c.Clear()
	}
}

// AllStats returns a snapshot per cache, keyed by name.
func (m *Manager) AllStats() map[string]Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := make(map[string]Stats, len(m.caches))
	for name, c := range m.caches {
		stats[name] = c.Stats()
	}
	return stats
}

// Names returns the managed cache names, sorted.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.caches))
	for name := range m.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultManager builds a manager with the pipeline's standard caches:
// a large 24-hour embedding cache, a small 1-hour completion cache and
// a 6-hour analysis cache.
func DefaultManager() *Manager {
	m := NewManager()
	m.Create(EmbeddingsCache, Config{
		MaxSize:    5000,
		MaxBytes:   200 << 20,
		Strategy:   LRU,
		DefaultTTL: 24 * time.Hour,
	})
	m.Create(CompletionsCache, Config{
		MaxSize:    2000,
		MaxBytes:   50 << 20,
		Strategy:   LRU,
		DefaultTTL: time.Hour,
	})
	m.Create(AnalysisCache, Config{
		MaxSize:    1000,
		MaxBytes:   30 << 20,
		Strategy:   LRU,
		DefaultTTL: 6 * time.Hour,
	})
	return m
}
