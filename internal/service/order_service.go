package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

var (
	ErrInvalidOrderID    = errors.New("invalid order ID")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrIllegalTransition = errors.New("illegal status transition")
)

// StatusPublisher emits an event after an order status write
type StatusPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, order *models.Order) error
}

// OrderService handles order tracking and the administrative status
// transitions. Orders themselves are created by the checkout service.
type OrderService struct {
	repo      repository.OrderRepository
	publisher StatusPublisher
	log       *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repo repository.OrderRepository, publisher StatusPublisher, log *slog.Logger) *OrderService {
	return &OrderService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// GetOrder returns an order by ID, used by the customer tracking page
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	return s.repo.GetByID(ctx, id)
}

// ListOrders returns all orders for the admin order list
func (s *OrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.GetAll(ctx)
}

// UpdateStatus moves an order to the given status. Transitions follow the
// state machine Pending -> {Processing, Cancelled}, Processing ->
// {Delivered, Cancelled}; Delivered and Cancelled are terminal. The write
// itself is a last-writer-wins single-field update.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order for update: %w", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, order.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = status
	s.log.Info("order status updated", "order_id", id, "status", status)

	if s.publisher != nil {
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := s.publisher.PublishOrderStatusChanged(pubCtx, order); err != nil {
				s.log.Warn("failed to publish status event", "order_id", id, "error", err)
			}
		}()
	}

	return order, nil
}
