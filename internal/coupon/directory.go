// Package coupon looks up discount codes against the coupon directory.
// A bloom filter over active codes screens out bogus codes before the store
// round trip; bloom hits are always confirmed against the repository, so
// false positives cost a lookup but never mis-validate.
package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

var (
	// ErrNotFound is returned for codes that do not match an active coupon.
	// This is an expected outcome, not a failure of the directory.
	ErrNotFound = errors.New("coupon not found or inactive")
)

const (
	// filter sizing; the directory holds a handful of codes but the same
	// settings hold up to catalog-scale coupon drops
	filterCapacity      = 100000
	filterFalsePositive = 0.01
)

// Directory resolves coupon codes to active coupons
type Directory struct {
	repo repository.CouponRepository

	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewDirectory creates a Directory over the given repository. Call Reload
// before serving lookups to prime the negative cache; an unprimed directory
// still works, it just hits the repository for every code.
func NewDirectory(repo repository.CouponRepository) *Directory {
	return &Directory{repo: repo}
}

// Canonicalize normalizes a raw code for matching: trimmed, upper case
func Canonicalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Reload rebuilds the bloom filter from the currently active coupon codes.
// Admin coupon writes call this so the filter tracks the directory.
func (d *Directory) Reload(ctx context.Context) error {
	coupons, err := d.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load coupons: %w", err)
	}

	filter := bloom.NewWithEstimates(filterCapacity, filterFalsePositive)
	for _, c := range coupons {
		if c.IsActive {
			filter.AddString(Canonicalize(c.Code))
		}
	}

	d.mu.Lock()
	d.filter = filter
	d.mu.Unlock()
	return nil
}

// Lookup canonicalizes code and returns the matching active coupon.
// A miss (unknown code or inactive coupon) returns ErrNotFound; any other
// error is a transient repository failure and is retryable.
func (d *Directory) Lookup(ctx context.Context, code string) (*models.Coupon, error) {
	canonical := Canonicalize(code)
	if canonical == "" {
		return nil, ErrNotFound
	}

	d.mu.RLock()
	filter := d.filter
	d.mu.RUnlock()

	if filter != nil && !filter.TestString(canonical) {
		return nil, ErrNotFound
	}

	coupon, err := d.repo.FindActiveByCode(ctx, canonical)
	if err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("coupon lookup failed: %w", err)
	}

	return coupon, nil
}
