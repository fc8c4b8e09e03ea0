package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/franciscoedibles/storefront/internal/models"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
)

// OrderRepository defines data access for orders. Orders are written once at
// checkout; afterwards only the status field changes.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
}

// InMemoryOrderRepository implements OrderRepository with in-memory storage
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
	ids    []string
}

// NewInMemoryOrderRepository creates an empty in-memory order repository
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]*models.Order),
	}
}

// Create stores a new order; duplicate ids are rejected
func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return ErrOrderAlreadyExists
	}

	orderCopy := *order
	r.orders[order.ID] = &orderCopy
	r.ids = append(r.ids, order.ID)
	return nil
}

// GetByID returns an order by id
func (r *InMemoryOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	orderCopy := *order
	return &orderCopy, nil
}

// GetAll returns all orders, newest first
func (r *InMemoryOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]models.Order, 0, len(r.ids))
	for i := len(r.ids) - 1; i >= 0; i-- {
		orders = append(orders, *r.orders[r.ids[i]])
	}
	return orders, nil
}

// UpdateStatus sets the order's status field
func (r *InMemoryOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return ErrOrderNotFound
	}

	order.Status = status
	return nil
}
