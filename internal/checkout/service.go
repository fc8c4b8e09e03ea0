// Package checkout converts a live cart plus delivery details into a
// persisted order snapshot.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/franciscoedibles/storefront/internal/cart"
	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/pricing"
	"github.com/franciscoedibles/storefront/internal/repository"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidName          = errors.New("full name must be at least 2 characters")
	ErrInvalidPhone         = errors.New("phone number must be at least 10 characters")
	ErrInvalidAddress       = errors.New("delivery address must be at least 10 characters")
	ErrInvalidCity          = errors.New("city must be at least 2 characters")
	ErrInvalidState         = errors.New("state must be at least 2 characters")
	ErrInvalidPaymentMethod = errors.New("payment method must be card or delivery")
	ErrConfirmationRequired = errors.New("pay-on-delivery requires confirmation")
	ErrSubmissionInProgress = errors.New("a submission is already in progress")
)

// EventPublisher emits order lifecycle events after a successful write
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
}

// Request carries the delivery and payment form input
type Request struct {
	FullName      string               `json:"fullName"`
	Phone         string               `json:"phone"`
	Address       string               `json:"address"`
	City          string               `json:"city"`
	State         string               `json:"state"`
	CustomerEmail string               `json:"customerEmail,omitempty"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	// DeliveryConfirmed is the explicit second confirmation required
	// before a pay-on-delivery order is persisted.
	DeliveryConfirmed bool `json:"deliveryConfirmed"`
}

// Validate checks the delivery form constraints
func (r Request) Validate() error {
	if len(strings.TrimSpace(r.FullName)) < 2 {
		return ErrInvalidName
	}
	if len(strings.TrimSpace(r.Phone)) < 10 {
		return ErrInvalidPhone
	}
	if len(strings.TrimSpace(r.Address)) < 10 {
		return ErrInvalidAddress
	}
	if len(strings.TrimSpace(r.City)) < 2 {
		return ErrInvalidCity
	}
	if len(strings.TrimSpace(r.State)) < 2 {
		return ErrInvalidState
	}
	if !r.PaymentMethod.Valid() {
		return ErrInvalidPaymentMethod
	}
	return nil
}

// Service performs checkout submission
type Service struct {
	orders    repository.OrderRepository
	pricer    pricing.Engine
	publisher EventPublisher
	log       *slog.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewService creates a checkout service
func NewService(orders repository.OrderRepository, pricer pricing.Engine, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		orders:    orders,
		pricer:    pricer,
		publisher: publisher,
		log:       log,
		inFlight:  make(map[string]bool),
	}
}

// Submit validates the form, freezes the cart into an order snapshot with
// status Pending, persists it, and clears the cart. If the order write
// fails the cart is left untouched so the customer can retry. A second
// submission for the same session while one is in flight is rejected.
func (s *Service) Submit(ctx context.Context, store *cart.Store, req Request) (*models.Order, error) {
	sessionID := store.SessionID()
	if !s.begin(sessionID) {
		return nil, ErrSubmissionInProgress
	}
	defer s.finish(sessionID)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.PaymentMethod == models.PaymentOnDelivery && !req.DeliveryConfirmed {
		return nil, ErrConfirmationRequired
	}

	lines := store.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	coupon := store.Coupon()
	quote := s.pricer.Quote(lines, coupon)

	orderLines := make([]models.OrderLine, len(lines))
	for i, l := range lines {
		orderLines[i] = models.OrderLine{
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		CustomerName:  strings.TrimSpace(req.FullName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		Phone:         strings.TrimSpace(req.Phone),
		Address:       strings.TrimSpace(req.Address),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		Lines:         orderLines,
		Subtotal:      quote.Subtotal,
		Discount:      quote.Discount,
		DeliveryFee:   quote.DeliveryFee,
		Total:         quote.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderPending,
		CreatedAt:     time.Now().UTC(),
	}
	if coupon != nil {
		order.CouponCode = coupon.Code
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// cart stays intact so the customer can retry
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	if s.publisher != nil {
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := s.publisher.PublishOrderCreated(pubCtx, order); err != nil {
				s.log.Warn("failed to publish order.created event", "order_id", order.ID, "error", err)
			}
		}()
	}

	if err := store.Clear(ctx); err != nil {
		// the order exists; a stale cart is recoverable, losing the order is not
		s.log.Warn("failed to clear cart after checkout", "session_id", sessionID, "error", err)
	}

	s.log.Info("order submitted", "order_id", order.ID, "total", order.Total, "payment_method", order.PaymentMethod)
	return order, nil
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[sessionID] {
		return false
	}
	s.inFlight[sessionID] = true
	return true
}

func (s *Service) finish(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}
