package repository

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/franciscoedibles/storefront/internal/models"
)

var (
	ErrCouponNotFound = errors.New("coupon not found")
)

// CouponRepository defines data access for coupons. FindActiveByCode is the
// query-by-field lookup the cart's apply-coupon flow depends on; it must
// reflect activations and deactivations immediately.
type CouponRepository interface {
	GetAll(ctx context.Context) ([]models.Coupon, error)
	FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error)
	Create(ctx context.Context, coupon *models.Coupon) error
	Update(ctx context.Context, coupon *models.Coupon) error
	Delete(ctx context.Context, id string) error
}

// InMemoryCouponRepository implements CouponRepository with in-memory storage
type InMemoryCouponRepository struct {
	mu      sync.RWMutex
	coupons map[string]models.Coupon
	order   []string
}

// NewInMemoryCouponRepository creates an in-memory coupon repository seeded
// with the storefront's sample coupons.
func NewInMemoryCouponRepository() *InMemoryCouponRepository {
	seed := []models.Coupon{
		{ID: "coupon-1", Code: "WELCOME10", DiscountType: models.DiscountPercentage, DiscountValue: 10, IsActive: true},
		{ID: "coupon-2", Code: "NAIRA10", DiscountType: models.DiscountFixed, DiscountValue: 1000, IsActive: true},
		{ID: "coupon-3", Code: "INACTIVE", DiscountType: models.DiscountPercentage, DiscountValue: 20, IsActive: false},
	}

	r := &InMemoryCouponRepository{
		coupons: make(map[string]models.Coupon, len(seed)),
		order:   make([]string, 0, len(seed)),
	}
	for _, c := range seed {
		r.coupons[c.ID] = c
		r.order = append(r.order, c.ID)
	}
	return r
}

// GetAll returns all coupons in insertion order
func (r *InMemoryCouponRepository) GetAll(ctx context.Context) ([]models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	coupons := make([]models.Coupon, 0, len(r.order))
	for _, id := range r.order {
		coupons = append(coupons, r.coupons[id])
	}
	return coupons, nil
}

// FindActiveByCode returns the active coupon with the exact given code.
// Inactive coupons are treated as not found.
func (r *InMemoryCouponRepository) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.coupons {
		if strings.EqualFold(c.Code, code) && c.IsActive {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, ErrCouponNotFound
}

// Create stores a new coupon
func (r *InMemoryCouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.coupons[coupon.ID]; !exists {
		r.order = append(r.order, coupon.ID)
	}
	r.coupons[coupon.ID] = *coupon
	return nil
}

// Update replaces an existing coupon
func (r *InMemoryCouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.coupons[coupon.ID]; !exists {
		return ErrCouponNotFound
	}
	r.coupons[coupon.ID] = *coupon
	return nil
}

// Delete removes a coupon
func (r *InMemoryCouponRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.coupons[id]; !exists {
		return ErrCouponNotFound
	}
	delete(r.coupons, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
