// Package cart holds the customer's in-progress selection. A Store is
// scoped to one session and persists its full state after every mutation so
// the cart survives page reloads.
package cart

import (
	"context"
	"errors"
	"sync"

	"github.com/franciscoedibles/storefront/internal/models"
)

var (
	// ErrItemSoldOut is returned when adding an item flagged sold out.
	// The store re-validates availability instead of trusting the caller.
	ErrItemSoldOut = errors.New("item is sold out")
)

// Line is one cart entry. The unit price and name are copied from the menu
// item at add time, matching what the customer saw.
type Line struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// State is the durable snapshot of a cart: its lines in insertion order
// plus the applied coupon, if any.
type State struct {
	Lines  []Line         `json:"lines"`
	Coupon *models.Coupon `json:"coupon,omitempty"`
}

// Persister saves and loads cart state keyed by session id
type Persister interface {
	Save(ctx context.Context, sessionID string, state State) error
	Load(ctx context.Context, sessionID string) (State, error)
	Delete(ctx context.Context, sessionID string) error
}

// Store is the session-scoped cart. It is safe for concurrent use, though
// each session normally issues one operation at a time.
type Store struct {
	sessionID string
	persister Persister

	mu     sync.Mutex
	lines  []Line
	coupon *models.Coupon
}

// NewStore creates a cart for the given session, reloading any previously
// saved state. A missing or unreadable saved cart loads as empty.
func NewStore(ctx context.Context, sessionID string, persister Persister) *Store {
	s := &Store{
		sessionID: sessionID,
		persister: persister,
	}

	if persister != nil {
		if state, err := persister.Load(ctx, sessionID); err == nil {
			s.lines = state.Lines
			s.coupon = state.Coupon
		}
	}

	return s
}

// SessionID returns the owning session id
func (s *Store) SessionID() string {
	return s.sessionID
}

// AddItem appends a line with quantity 1, or increments the existing line
// for the same item id. Sold-out items are rejected.
func (s *Store) AddItem(ctx context.Context, item models.MenuItem) error {
	if item.SoldOut {
		return ErrItemSoldOut
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Quantity++
			return s.persist(ctx)
		}
	}

	s.lines = append(s.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  1,
	})
	return s.persist(ctx)
}

// RemoveItem deletes the line for itemID. Removing an absent item is a no-op.
func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// SetQuantity sets the line's quantity. A quantity of zero or less removes
// the line; a line with quantity <= 0 is never stored.
func (s *Store) SetQuantity(ctx context.Context, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, itemID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == itemID {
			s.lines[i].Quantity = quantity
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart and drops the applied coupon. Coupon validity is
// cart-dependent, so it cannot outlive the cart it was applied to.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.coupon = nil

	if s.persister != nil {
		return s.persister.Delete(ctx, s.sessionID)
	}
	return nil
}

// SetCoupon records the applied coupon and persists it with the cart
func (s *Store) SetCoupon(ctx context.Context, coupon *models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.coupon = coupon
	return s.persist(ctx)
}

// ClearCoupon unconditionally drops the applied coupon
func (s *Store) ClearCoupon(ctx context.Context) error {
	return s.SetCoupon(ctx, nil)
}

// Coupon returns the applied coupon, or nil
func (s *Store) Coupon() *models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.coupon == nil {
		return nil
	}
	c := *s.coupon
	return &c
}

// Lines returns a copy of the cart lines in insertion order
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// Empty reports whether the cart has no lines
func (s *Store) Empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// persist saves the full state; callers must hold s.mu
func (s *Store) persist(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	state := State{
		Lines:  make([]Line, len(s.lines)),
		Coupon: s.coupon,
	}
	copy(state.Lines, s.lines)

	return s.persister.Save(ctx, s.sessionID, state)
}
