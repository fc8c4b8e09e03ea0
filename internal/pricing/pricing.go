// Package pricing computes monetary figures for a cart. All functions are
// pure and all amounts are int64 minor currency units (kobo); figures are
// recomputed from current cart state on every read, never cached.
package pricing

import (
	"github.com/franciscoedibles/storefront/internal/cart"
	"github.com/franciscoedibles/storefront/internal/models"
)

// DefaultDeliveryFee is charged on any non-empty cart unless configured otherwise
const DefaultDeliveryFee int64 = 500

// Quote bundles the four monetary figures for a cart
type Quote struct {
	Subtotal    int64 `json:"subtotal"`
	Discount    int64 `json:"discount"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`
}

// Subtotal sums unit price times quantity over all cart lines
func Subtotal(lines []cart.Line) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.UnitPrice * int64(l.Quantity)
	}
	return sum
}

// Discount computes the amount a coupon takes off the subtotal. A nil
// coupon discounts nothing. Fixed discounts are clamped to the subtotal so
// the total can never go negative.
func Discount(subtotal int64, coupon *models.Coupon) int64 {
	if coupon == nil {
		return 0
	}

	switch coupon.DiscountType {
	case models.DiscountPercentage:
		return subtotal * coupon.DiscountValue / 100
	case models.DiscountFixed:
		if coupon.DiscountValue > subtotal {
			return subtotal
		}
		return coupon.DiscountValue
	}
	return 0
}

// Total combines the figures, clamped at zero
func Total(subtotal, discount, deliveryFee int64) int64 {
	total := subtotal - discount + deliveryFee
	if total < 0 {
		return 0
	}
	return total
}

// Engine holds pricing configuration
type Engine struct {
	DeliveryFee int64
}

// NewEngine creates an Engine with the given delivery fee; a non-positive
// fee falls back to the default.
func NewEngine(deliveryFee int64) Engine {
	if deliveryFee <= 0 {
		deliveryFee = DefaultDeliveryFee
	}
	return Engine{DeliveryFee: deliveryFee}
}

// Fee returns the delivery fee: fixed for any non-empty cart, zero otherwise
func (e Engine) Fee(subtotal int64) int64 {
	if subtotal > 0 {
		return e.DeliveryFee
	}
	return 0
}

// Quote computes all figures for the given lines and optional coupon
func (e Engine) Quote(lines []cart.Line, coupon *models.Coupon) Quote {
	subtotal := Subtotal(lines)
	discount := Discount(subtotal, coupon)
	fee := e.Fee(subtotal)

	return Quote{
		Subtotal:    subtotal,
		Discount:    discount,
		DeliveryFee: fee,
		Total:       Total(subtotal, discount, fee),
	}
}
