package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscoedibles/storefront/internal/models"
)

type fakePersister struct {
	states  map[string]State
	saveErr error
}

func newFakePersister() *fakePersister {
	return &fakePersister{states: make(map[string]State)}
}

func (p *fakePersister) Save(_ context.Context, sessionID string, state State) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.states[sessionID] = state
	return nil
}

func (p *fakePersister) Load(_ context.Context, sessionID string) (State, error) {
	return p.states[sessionID], nil
}

func (p *fakePersister) Delete(_ context.Context, sessionID string) error {
	delete(p.states, sessionID)
	return nil
}

func menuItem(id, name string, price int64) models.MenuItem {
	return models.MenuItem{ID: id, Name: name, Price: price}
}

func TestAddItemIncrementsExistingLine(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, "s1", newFakePersister())

	require.NoError(t, store.AddItem(ctx, menuItem("1", "Jollof Rice", 1599)))
	require.NoError(t, store.AddItem(ctx, menuItem("1", "Jollof Rice", 1599)))
	require.NoError(t, store.AddItem(ctx, menuItem("2", "Suya", 850)))

	lines := store.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].ItemID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(1599), lines[0].UnitPrice)
	assert.Equal(t, "2", lines[1].ItemID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAddItemRejectsSoldOut(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, "s1", newFakePersister())

	item := menuItem("3", "Dodo", 499)
	item.SoldOut = true

	err := store.AddItem(ctx, item)
	assert.ErrorIs(t, err, ErrItemSoldOut)
	assert.True(t, store.Empty())
}

func TestSetQuantity(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, "s1", newFakePersister())
	require.NoError(t, store.AddItem(ctx, menuItem("1", "Jollof Rice", 1599)))

	require.NoError(t, store.SetQuantity(ctx, "1", 5))
	assert.Equal(t, 5, store.Lines()[0].Quantity)

	// zero or negative removes the line
	require.NoError(t, store.SetQuantity(ctx, "1", 0))
	assert.True(t, store.Empty())

	// setting quantity for an absent line is a no-op
	require.NoError(t, store.SetQuantity(ctx, "missing", 3))
	assert.True(t, store.Empty())
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(ctx, "s1", newFakePersister())
	require.NoError(t, store.AddItem(ctx, menuItem("1", "Jollof Rice", 1599)))

	require.NoError(t, store.RemoveItem(ctx, "1"))
	require.NoError(t, store.RemoveItem(ctx, "1"))
	assert.True(t, store.Empty())
}

func TestClearDropsLinesAndCoupon(t *testing.T) {
	ctx := context.Background()
	persister := newFakePersister()
	store := NewStore(ctx, "s1", persister)

	require.NoError(t, store.AddItem(ctx, menuItem("1", "Jollof Rice", 1599)))
	require.NoError(t, store.SetCoupon(ctx, &models.Coupon{Code: "WELCOME10", DiscountType: models.DiscountPercentage, DiscountValue: 10}))

	require.NoError(t, store.Clear(ctx))

	assert.True(t, store.Empty())
	assert.Nil(t, store.Coupon())
	assert.Empty(t, persister.states)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	persister := newFakePersister()

	store := NewStore(ctx, "s1", persister)
	require.NoError(t, store.AddItem(ctx, menuItem("1", "Jollof Rice", 1599)))
	require.NoError(t, store.SetQuantity(ctx, "1", 3))
	require.NoError(t, store.SetCoupon(ctx, &models.Coupon{Code: "WELCOME10", DiscountType: models.DiscountPercentage, DiscountValue: 10}))

	reloaded := NewStore(ctx, "s1", persister)
	lines := reloaded.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
	require.NotNil(t, reloaded.Coupon())
	assert.Equal(t, "WELCOME10", reloaded.Coupon().Code)
}

func TestAddItemSurfacesPersistFailure(t *testing.T) {
	ctx := context.Background()
	persister := newFakePersister()
	persister.saveErr = errors.New("store down")

	store := NewStore(ctx, "s1", persister)
	err := store.AddItem(ctx, menuItem("1", "Jollof Rice", 1599))
	assert.Error(t, err)
}

func TestManagerReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	m := NewManager(newFakePersister())

	a := m.Get(ctx, "s1")
	b := m.Get(ctx, "s1")
	c := m.Get(ctx, "s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}
