package coupon

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

// countingRepo wraps the seeded in-memory repository and counts lookups so
// tests can tell whether the filter short-circuited the store round trip.
type countingRepo struct {
	repository.CouponRepository
	lookups int
	findErr error
}

func (r *countingRepo) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.CouponRepository.FindActiveByCode(ctx, code)
}

func newTestDirectory(t *testing.T) (*Directory, *countingRepo) {
	t.Helper()

	repo := &countingRepo{CouponRepository: repository.NewInMemoryCouponRepository()}
	d := NewDirectory(repo)
	require.NoError(t, d.Reload(context.Background()))
	return d, repo
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"welcome10", "WELCOME10"},
		{"  WELCOME10  ", "WELCOME10"},
		{"Welcome10", "WELCOME10"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Canonicalize(tt.in); got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLookupActiveCoupon(t *testing.T) {
	d, _ := newTestDirectory(t)

	coupon, err := d.Lookup(context.Background(), "welcome10")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", coupon.Code)
	assert.Equal(t, models.DiscountPercentage, coupon.DiscountType)
	assert.Equal(t, int64(10), coupon.DiscountValue)
}

func TestLookupMisses(t *testing.T) {
	d, _ := newTestDirectory(t)

	tests := []struct {
		name string
		code string
	}{
		{"unknown code", "NOSUCHCODE"},
		{"inactive coupon", "INACTIVE"},
		{"blank code", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Lookup(context.Background(), tt.code)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestLookupFilterScreensBogusCodes(t *testing.T) {
	d, repo := newTestDirectory(t)

	_, err := d.Lookup(context.Background(), "DEFINITELY-NOT-A-CODE")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, repo.lookups, "filter negative should skip the repository")
}

func TestLookupWithoutPrimedFilterHitsRepository(t *testing.T) {
	repo := &countingRepo{CouponRepository: repository.NewInMemoryCouponRepository()}
	d := NewDirectory(repo)

	coupon, err := d.Lookup(context.Background(), "NAIRA10")
	require.NoError(t, err)
	assert.Equal(t, "NAIRA10", coupon.Code)
	assert.Equal(t, 1, repo.lookups)
}

func TestLookupTransientFailureIsNotAMiss(t *testing.T) {
	d, repo := newTestDirectory(t)
	repo.findErr = errors.New("store down")

	_, err := d.Lookup(context.Background(), "WELCOME10")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestReloadTracksDirectoryChanges(t *testing.T) {
	inner := repository.NewInMemoryCouponRepository()
	repo := &countingRepo{CouponRepository: inner}
	d := NewDirectory(repo)
	require.NoError(t, d.Reload(context.Background()))

	newCoupon := &models.Coupon{ID: "coupon-4", Code: "FRESH20", DiscountType: models.DiscountPercentage, DiscountValue: 20, IsActive: true}
	require.NoError(t, inner.Create(context.Background(), newCoupon))

	// before reload the filter still screens the new code out
	_, err := d.Lookup(context.Background(), "FRESH20")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, repo.lookups)

	require.NoError(t, d.Reload(context.Background()))

	coupon, err := d.Lookup(context.Background(), "FRESH20")
	require.NoError(t, err)
	assert.Equal(t, "FRESH20", coupon.Code)
}
