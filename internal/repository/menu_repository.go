package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/franciscoedibles/storefront/internal/models"
)

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// MenuRepository defines data access for menu items
type MenuRepository interface {
	GetAll(ctx context.Context) ([]models.MenuItem, error)
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id string) error
}

// InMemoryMenuRepository implements MenuRepository with in-memory storage
type InMemoryMenuRepository struct {
	mu    sync.RWMutex
	items map[string]models.MenuItem
	order []string
}

// NewInMemoryMenuRepository creates an in-memory menu repository seeded with
// the storefront menu. Prices are in kobo.
func NewInMemoryMenuRepository() *InMemoryMenuRepository {
	seed := []models.MenuItem{
		{ID: "1", Name: "Jollof Rice & Chicken", Description: "Fragrant rice cooked in a rich tomato and pepper sauce, served with grilled chicken.", Price: 1599, Category: "Main Dishes"},
		{ID: "2", Name: "Spicy Suya Skewers", Description: "Tender beef skewers marinated in a spicy peanut blend, grilled to perfection.", Price: 850, Category: "Sides"},
		{ID: "3", Name: "Fried Plantains (Dodo)", Description: "Sweet, ripe plantains, deep-fried until golden brown and caramelized.", Price: 499, Category: "Sides", SoldOut: true},
		{ID: "4", Name: "Egusi Soup with Pounded Yam", Description: "A rich soup made from ground melon seeds, spinach, and assorted meats.", Price: 1800, Category: "Main Dishes"},
		{ID: "5", Name: "Zobo Drink", Description: "A refreshing hibiscus flower drink, infused with ginger and pineapple.", Price: 350, Category: "Drinks"},
		{ID: "6", Name: "Puff Puff", Description: "Light and airy sweet dough balls, deep-fried to a golden perfection.", Price: 500, Category: "Desserts"},
	}

	r := &InMemoryMenuRepository{
		items: make(map[string]models.MenuItem, len(seed)),
		order: make([]string, 0, len(seed)),
	}
	for _, item := range seed {
		r.items[item.ID] = item
		r.order = append(r.order, item.ID)
	}
	return r
}

// GetAll returns all menu items in insertion order
func (r *InMemoryMenuRepository) GetAll(ctx context.Context) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(r.order))
	for _, id := range r.order {
		items = append(items, r.items[id])
	}
	return items, nil
}

// GetByID returns a menu item by its ID
func (r *InMemoryMenuRepository) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrMenuItemNotFound
	}
	return &item, nil
}

// Create stores a new menu item
func (r *InMemoryMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		r.order = append(r.order, item.ID)
	}
	r.items[item.ID] = *item
	return nil
}

// Update replaces an existing menu item
func (r *InMemoryMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return ErrMenuItemNotFound
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes a menu item
func (r *InMemoryMenuRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[id]; !exists {
		return ErrMenuItemNotFound
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
