package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/franciscoedibles/storefront/internal/models"
)

var (
	ErrChefNotFound = errors.New("chef not found")
)

// ChefRepository defines data access for chef profiles
type ChefRepository interface {
	GetAll(ctx context.Context) ([]models.Chef, error)
	GetByID(ctx context.Context, id string) (*models.Chef, error)
	Create(ctx context.Context, chef *models.Chef) error
	Update(ctx context.Context, chef *models.Chef) error
	Delete(ctx context.Context, id string) error
}

// InMemoryChefRepository implements ChefRepository with in-memory storage
type InMemoryChefRepository struct {
	mu    sync.RWMutex
	chefs map[string]models.Chef
	order []string
}

// NewInMemoryChefRepository creates an in-memory chef repository seeded with
// the storefront roster.
func NewInMemoryChefRepository() *InMemoryChefRepository {
	seed := []models.Chef{
		{ID: "chef-1", Name: "Tunde Wey", Title: "Head Chef", Bio: "With over 20 years of experience in Nigerian and international cuisine, Chef Tunde is the creative force behind our menu."},
		{ID: "chef-2", Name: "Adebisi Adeyemi", Title: "Sous Chef", Bio: "Adebisi brings a modern twist to traditional dishes, specializing in fusion flavors and artistic presentation."},
		{ID: "chef-3", Name: "Chidinma Okoro", Title: "Pastry Chef", Bio: "Our queen of desserts, Chidinma crafts delightful sweets that are the perfect end to any meal."},
	}

	r := &InMemoryChefRepository{
		chefs: make(map[string]models.Chef, len(seed)),
		order: make([]string, 0, len(seed)),
	}
	for _, chef := range seed {
		r.chefs[chef.ID] = chef
		r.order = append(r.order, chef.ID)
	}
	return r
}

// GetAll returns all chefs in insertion order
func (r *InMemoryChefRepository) GetAll(ctx context.Context) ([]models.Chef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chefs := make([]models.Chef, 0, len(r.order))
	for _, id := range r.order {
		chefs = append(chefs, r.chefs[id])
	}
	return chefs, nil
}

// GetByID returns a chef by ID
func (r *InMemoryChefRepository) GetByID(ctx context.Context, id string) (*models.Chef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chef, exists := r.chefs[id]
	if !exists {
		return nil, ErrChefNotFound
	}
	return &chef, nil
}

// Create stores a new chef profile
func (r *InMemoryChefRepository) Create(ctx context.Context, chef *models.Chef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chefs[chef.ID]; !exists {
		r.order = append(r.order, chef.ID)
	}
	r.chefs[chef.ID] = *chef
	return nil
}

// Update replaces an existing chef profile
func (r *InMemoryChefRepository) Update(ctx context.Context, chef *models.Chef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chefs[chef.ID]; !exists {
		return ErrChefNotFound
	}
	r.chefs[chef.ID] = *chef
	return nil
}

// Delete removes a chef profile
func (r *InMemoryChefRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.chefs[id]; !exists {
		return ErrChefNotFound
	}
	delete(r.chefs, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
