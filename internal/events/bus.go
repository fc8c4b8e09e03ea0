// Package events publishes order lifecycle events over NATS and feeds them
// back to in-process subscribers such as the admin order feed.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/franciscoedibles/storefront/internal/models"
)

// Bus is a NATS-backed event bus for order events
type Bus struct {
	nc  *nats.Conn
	log *slog.Logger
}

// Connect establishes the NATS connection with reconnect handling
func Connect(url string, log *slog.Logger) (*Bus, error) {
	nc, err := nats.Connect(url,
		nats.Name("Storefront API"),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	log.Info("connected to nats", "url", url)
	return &Bus{nc: nc, log: log}, nil
}

// PublishOrderCreated emits an order.created event
func (b *Bus) PublishOrderCreated(ctx context.Context, order *models.Order) error {
	return b.publish(ctx, SubjectOrderCreated, newOrderEvent(SubjectOrderCreated, order))
}

// PublishOrderStatusChanged emits an order.status_changed event
func (b *Bus) PublishOrderStatusChanged(ctx context.Context, order *models.Order) error {
	return b.publish(ctx, SubjectOrderStatusChanged, newOrderEvent(SubjectOrderStatusChanged, order))
}

func (b *Bus) publish(ctx context.Context, subject string, event OrderEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	for attempt := 1; attempt <= 3; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err = b.nc.Publish(subject, data); err != nil {
			b.log.Warn("failed to publish event", "subject", subject, "attempt", attempt, "error", err)
			time.Sleep(time.Second)
			continue
		}

		if err = b.nc.FlushTimeout(2 * time.Second); err != nil {
			b.log.Warn("failed to flush nats connection", "error", err)
			continue
		}

		b.log.Info("published event", "subject", subject, "order_id", event.OrderID)
		return nil
	}

	return fmt.Errorf("failed to publish %s after retries: %w", subject, err)
}

// SubscribeOrders delivers every order event to handler until the returned
// cancel function is called.
func (b *Bus) SubscribeOrders(handler func(OrderEvent)) (func(), error) {
	sub, err := b.nc.Subscribe(subjectOrderWildcard, func(msg *nats.Msg) {
		var event OrderEvent
		if err := json.Unmarshal(msg.Data, &event); err != nil {
			b.log.Warn("discarding malformed order event", "subject", msg.Subject, "error", err)
			return
		}
		handler(event)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to order events: %w", err)
	}

	return func() { _ = sub.Unsubscribe() }, nil
}

// Close drains the connection
func (b *Bus) Close() {
	if b.nc != nil && b.nc.IsConnected() {
		b.nc.Close()
		b.log.Info("nats connection closed")
	}
}
