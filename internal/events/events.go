package events

import (
	"time"

	"github.com/franciscoedibles/storefront/internal/models"
)

// NATS subjects for order events
const (
	SubjectOrderCreated       = "order.created"
	SubjectOrderStatusChanged = "order.status_changed"

	// subjectOrderWildcard matches every order event, used by the admin feed
	subjectOrderWildcard = "order.>"
)

// OrderEvent is the wire form of an order change pushed to subscribers.
// The admin order list consumes these to stay current without polling.
type OrderEvent struct {
	Type         string             `json:"type"`
	OrderID      string             `json:"orderId"`
	CustomerName string             `json:"customerName"`
	Status       models.OrderStatus `json:"status"`
	Total        int64              `json:"total"`
	OccurredAt   time.Time          `json:"occurredAt"`
}

func newOrderEvent(eventType string, order *models.Order) OrderEvent {
	return OrderEvent{
		Type:         eventType,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		Total:        order.Total,
		OccurredAt:   time.Now().UTC(),
	}
}
