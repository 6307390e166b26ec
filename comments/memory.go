package comments

import (
	"context"
	"sync"
)

// MemoryStore keeps threads in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	threads map[int][]Comment
	saves   int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[int][]Comment)}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, projectID int) ([]Comment, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	thread, ok := m.threads[projectID]
	if !ok {
		return nil, false, nil
	}
	return append([]Comment(nil), thread...), true, nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, projectID int, comments []Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threads[projectID] = append([]Comment(nil), comments...)
	m.saves++
	return nil
}

// Saves returns the number of Save calls.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var _ Store = (*MemoryStore)(nil)
