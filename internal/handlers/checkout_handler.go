package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/franciscoedibles/storefront/internal/cart"
	"github.com/franciscoedibles/storefront/internal/checkout"
	"github.com/franciscoedibles/storefront/internal/middleware"
)

// CheckoutHandler handles POST /api/checkout
type CheckoutHandler struct {
	carts   *cart.Manager
	service *checkout.Service
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(carts *cart.Manager, service *checkout.Service, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		carts:   carts,
		service: service,
		logger:  logger,
	}
}

// checkoutResponse returns the order id for tracking
type checkoutResponse struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Total   int64  `json:"total"`
}

// Submit handles checkout submission. Validation failures come back as
// 400s with the field message; a failed order write is a 503 and leaves
// the cart intact for retry.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	store := h.carts.Get(r.Context(), middleware.SessionID(r.Context()))

	order, err := h.service.Submit(r.Context(), store, req)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrSubmissionInProgress):
			writeError(w, http.StatusConflict, "Your order is already being submitted")
		case errors.Is(err, checkout.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "Your cart is empty")
		case errors.Is(err, checkout.ErrInvalidName),
			errors.Is(err, checkout.ErrInvalidPhone),
			errors.Is(err, checkout.ErrInvalidAddress),
			errors.Is(err, checkout.ErrInvalidCity),
			errors.Is(err, checkout.ErrInvalidState),
			errors.Is(err, checkout.ErrInvalidPaymentMethod),
			errors.Is(err, checkout.ErrConfirmationRequired):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("checkout failed", "error", err)
			writeError(w, http.StatusServiceUnavailable, "Could not place your order, please try again")
		}
		return
	}

	writeJSON(w, http.StatusCreated, checkoutResponse{
		OrderID: order.ID,
		Status:  string(order.Status),
		Total:   order.Total,
	})
}
