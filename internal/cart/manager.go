package cart

import (
	"context"
	"sync"
)

// Manager hands out one Store per session. It exists so handlers receive an
// explicit dependency rather than reaching for process-wide cart state, and
// so tests can build isolated carts.
type Manager struct {
	persister Persister

	mu     sync.Mutex
	stores map[string]*Store
}

// NewManager creates a Manager backed by the given persister
func NewManager(persister Persister) *Manager {
	return &Manager{
		persister: persister,
		stores:    make(map[string]*Store),
	}
}

// Get returns the store for sessionID, creating it (and reloading any saved
// state) on first use.
func (m *Manager) Get(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if store, ok := m.stores[sessionID]; ok {
		return store
	}

	store := NewStore(ctx, sessionID, m.persister)
	m.stores[sessionID] = store
	return store
}
