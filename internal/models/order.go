package models

import "time"

// OrderStatus tracks an order through fulfillment
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// Valid reports whether s is a known order status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo reports whether the move from s to next is allowed:
// Pending -> {Processing, Cancelled}, Processing -> {Delivered, Cancelled}.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderPending:
		return next == OrderProcessing || next == OrderCancelled
	case OrderProcessing:
		return next == OrderDelivered || next == OrderCancelled
	}
	return false
}

// PaymentMethod enumerates how the customer pays
type PaymentMethod string

const (
	PaymentCard       PaymentMethod = "card"
	PaymentOnDelivery PaymentMethod = "delivery"
)

// Valid reports whether m is a known payment method
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentOnDelivery
}

// OrderLine is a frozen copy of a cart line taken at checkout. It is
// decoupled from the live catalog so later menu edits cannot alter
// historical orders.
type OrderLine struct {
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Order is the immutable snapshot created at checkout. Only Status may
// change after creation, and only through the admin order service.
type Order struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail,omitempty"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	Lines         []OrderLine   `json:"lines"`
	Subtotal      int64         `json:"subtotal"`
	Discount      int64         `json:"discount"`
	DeliveryFee   int64         `json:"deliveryFee"`
	Total         int64         `json:"total"`
	CouponCode    string        `json:"couponCode,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}
