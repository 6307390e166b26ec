// Package registry caches values built on first use.
package registry

import (
	"sort"
	"sync"
)

// Memo lazily builds one value per key and returns the cached value on
// later lookups.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	build   func(K) V
	entries map[K]V
	order   []K
}

// NewMemo creates a memo backed by build.
func NewMemo[K comparable, V any](build func(K) V) *Memo[K, V] {
	if build == nil {
		panic("registry: nil build func")
	}
	return &Memo[K, V]{build: build, entries: make(map[K]V)}
}

// Get returns the value for key, building it on first use.
func (m *Memo[K, V]) Get(key K) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.entries[key]; ok {
		return v
	}
	v := m.build(key)
	m.entries[key] = v
	m.order = append(m.order, key)
	return v
}

// Peek returns the cached value without building.
func (m *Memo[K, V]) Peek(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

// Len returns the number of cached entries.
func (m *Memo[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Keys returns cached keys in build order.
func (m *Memo[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]K, len(m.order))
	copy(out, m.order)
	return out
}

// Reset drops all entries. Values implementing Stop are stopped.
func (m *Memo[K, V]) Reset() {
	m.mu.Lock()
	entries := m.entries
	order := m.order
	m.entries = make(map[K]V)
	m.order = nil
	m.mu.Unlock()

	for _, key := range order {
		if s, ok := any(entries[key]).(interface{ Stop() }); ok {
			s.Stop()
		}
	}
}

// SortedKeys returns the keys of m sorted by less.
func SortedKeys[K comparable, V any](m *Memo[K, V], less func(a, b K) bool) []K {
	keys := m.Keys()
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}
