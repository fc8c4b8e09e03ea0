package events

import (
	"context"

	"github.com/franciscoedibles/storefront/internal/models"
)

// Noop satisfies the publisher and feed interfaces when NATS is not
// configured. Publishing succeeds silently and feed subscribers never
// receive events.
type Noop struct{}

func (Noop) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return nil
}

func (Noop) PublishOrderStatusChanged(ctx context.Context, order *models.Order) error {
	return nil
}

func (Noop) SubscribeOrders(handler func(OrderEvent)) (func(), error) {
	return func() {}, nil
}

func (Noop) Close() {}
