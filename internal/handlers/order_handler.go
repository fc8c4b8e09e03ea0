package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
	"github.com/franciscoedibles/storefront/internal/service"
)

// OrderHandler handles order tracking and the admin order endpoints
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

// GetOrder handles GET /api/order/{orderId}, the customer tracking endpoint
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	order, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderID):
			writeError(w, http.StatusBadRequest, "Invalid order ID")
		case errors.Is(err, repository.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "No order found with this ID")
		default:
			h.logger.Error("failed to get order", "order_id", orderID, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListOrders handles GET /api/admin/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /api/admin/orders/{orderId}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderID), errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrIllegalTransition):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, repository.ErrOrderNotFound):
			writeError(w, http.StatusNotFound, "Order not found")
		default:
			h.logger.Error("failed to update order status", "order_id", orderID, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}
