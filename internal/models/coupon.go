package models

// DiscountType enumerates how a coupon reduces the subtotal
type DiscountType string

const (
	// DiscountPercentage interprets DiscountValue as a percent of the subtotal (10 means 10%)
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed interprets DiscountValue as an absolute amount in kobo
	DiscountFixed DiscountType = "fixed"
)

// Valid reports whether t is a known discount type
func (t DiscountType) Valid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// Coupon represents a discount code managed by the back office.
// Codes are stored canonicalized to upper case and matched exactly.
type Coupon struct {
	ID            string       `json:"id"`
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue int64        `json:"discountValue"`
	IsActive      bool         `json:"isActive"`
}
