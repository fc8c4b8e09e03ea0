package repository

import (
	"context"
	"sync"

	"github.com/franciscoedibles/storefront/internal/cart"
)

// InMemoryCartRepository implements cart.Persister with in-memory storage.
// Loading a session that was never saved returns an empty state.
type InMemoryCartRepository struct {
	mu     sync.RWMutex
	states map[string]cart.State
}

// NewInMemoryCartRepository creates an empty in-memory cart persister
func NewInMemoryCartRepository() *InMemoryCartRepository {
	return &InMemoryCartRepository{
		states: make(map[string]cart.State),
	}
}

// Save stores the full cart state for the session
func (r *InMemoryCartRepository) Save(ctx context.Context, sessionID string, state cart.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cart.State{
		Lines:  make([]cart.Line, len(state.Lines)),
		Coupon: state.Coupon,
	}
	copy(stored.Lines, state.Lines)

	r.states[sessionID] = stored
	return nil
}

// Load returns the saved cart state, or an empty state if none exists
func (r *InMemoryCartRepository) Load(ctx context.Context, sessionID string) (cart.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, exists := r.states[sessionID]
	if !exists {
		return cart.State{}, nil
	}

	loaded := cart.State{
		Lines:  make([]cart.Line, len(state.Lines)),
		Coupon: state.Coupon,
	}
	copy(loaded.Lines, state.Lines)
	return loaded, nil
}

// Delete removes the saved cart state for the session
func (r *InMemoryCartRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, sessionID)
	return nil
}
