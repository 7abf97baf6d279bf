package cache

import (
	"sync"
	"time"

	"github.com/quantfra/stockhub/internal/metrics"
)

// Stats is a point-in-time snapshot of a store's counters.
type Stats struct {
	Entries     int   `json:"entries"`
	MaxEntries  int   `json:"max_entries"`
	Hits        int64 `json:"hits"`
	Misses      int64 `json:"misses"`
	Evictions   int64 `json:"evictions"`
	Expirations int64 `json:"expirations"`
	Enabled     bool  `json:"enabled"`
}

type entry[V any] struct {
	value     V
	createdAt time.Time
	lastUsed  int64
}

// Store is an in-process cache with a fixed TTL and a hard entry cap.
// Expired entries are dropped lazily on access; when the cap is
// exceeded the least recently used entry is evicted. A disabled store
// passes every lookup straight to the compute function.
type Store[V any] struct {
	name       string
	ttl        time.Duration
	maxEntries int
	enabled    bool

	mu      sync.Mutex
	entries map[string]*entry[V]
	tick    int64
	hits    int64
	misses  int64
	evicted int64
	expired int64

	now func() time.Time
}

func NewStore[V any](name string, ttl time.Duration, maxEntries int, enabled bool) *Store[V] {
	return &Store[V]{
		name:       name,
		ttl:        ttl,
		maxEntries: maxEntries,
		enabled:    enabled,
		entries:    make(map[string]*entry[V]),
		now:        time.Now,
	}
}

// GetOrCompute returns the cached value for key, or runs compute and
// caches its result. A compute error is returned as-is and nothing is
// cached, so the next call retries. compute runs outside the lock;
// concurrent misses on the same key may each run it once.
func (s *Store[V]) GetOrCompute(key string, compute func() (V, error)) (V, error) {
	if !s.enabled {
		return compute()
	}

	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		if s.now().Sub(e.createdAt) < s.ttl {
			s.tick++
			e.lastUsed = s.tick
			s.hits++
			v := e.value
			s.mu.Unlock()
			metrics.RecordCacheHit(s.name)
			return v, nil
		}
		delete(s.entries, key)
		s.expired++
	}
	s.misses++
	s.mu.Unlock()
	metrics.RecordCacheMiss(s.name)

	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}

	s.mu.Lock()
	s.tick++
	s.entries[key] = &entry[V]{value: v, createdAt: s.now(), lastUsed: s.tick}
	s.evictLocked()
	s.mu.Unlock()
	return v, nil
}

// Get returns the cached value without computing on a miss.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	if !s.enabled {
		return zero, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		s.misses++
		return zero, false
	}
	if s.now().Sub(e.createdAt) >= s.ttl {
		delete(s.entries, key)
		s.expired++
		s.misses++
		return zero, false
	}
	s.tick++
	e.lastUsed = s.tick
	s.hits++
	return e.value, true
}

// Set stores a value unconditionally, evicting if over capacity.
func (s *Store[V]) Set(key string, value V) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick++
	s.entries[key] = &entry[V]{value: value, createdAt: s.now(), lastUsed: s.tick}
	s.evictLocked()
}

func (s *Store[V]) evictLocked() {
	for s.maxEntries > 0 && len(s.entries) > s.maxEntries {
		var victim string
		oldest := int64(-1)
		for k, e := range s.entries {
			if oldest == -1 || e.lastUsed < oldest {
				oldest = e.lastUsed
				victim = k
			}
		}
		delete(s.entries, victim)
		s.evicted++
		metrics.RecordCacheEviction(s.name)
	}
}

// Clear drops every entry. Counters are preserved.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry[V])
}

func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store[V]) Name() string {
	return s.name
}

func (s *Store[V]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Entries:     len(s.entries),
		MaxEntries:  s.maxEntries,
		Hits:        s.hits,
		Misses:      s.misses,
		Evictions:   s.evicted,
		Expirations: s.expired,
		Enabled:     s.enabled,
	}
}
