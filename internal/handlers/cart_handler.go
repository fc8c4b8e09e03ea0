package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/franciscoedibles/storefront/internal/cart"
	"github.com/franciscoedibles/storefront/internal/coupon"
	"github.com/franciscoedibles/storefront/internal/middleware"
	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/pricing"
	"github.com/franciscoedibles/storefront/internal/repository"
	"github.com/franciscoedibles/storefront/internal/service"
)

// CartHandler handles the session cart endpoints
type CartHandler struct {
	carts   *cart.Manager
	menu    *service.MenuService
	coupons *coupon.Directory
	pricer  pricing.Engine
	logger  *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(carts *cart.Manager, menu *service.MenuService, coupons *coupon.Directory, pricer pricing.Engine, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:   carts,
		menu:    menu,
		coupons: coupons,
		pricer:  pricer,
		logger:  logger,
	}
}

// cartView is the cart representation returned to the storefront: the lines
// plus a freshly computed quote. Figures are always derived, never stored.
type cartView struct {
	Lines  []cart.Line    `json:"lines"`
	Coupon *models.Coupon `json:"coupon,omitempty"`
	pricing.Quote
}

func (h *CartHandler) store(r *http.Request) *cart.Store {
	return h.carts.Get(r.Context(), middleware.SessionID(r.Context()))
}

func (h *CartHandler) view(store *cart.Store) cartView {
	lines := store.Lines()
	appliedCoupon := store.Coupon()
	return cartView{
		Lines:  lines,
		Coupon: appliedCoupon,
		Quote:  h.pricer.Quote(lines, appliedCoupon),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view(h.store(r)))
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := decodeJSON(r, &req); err != nil || req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.menu.GetItem(r.Context(), req.ItemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			writeError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		h.logger.Error("failed to look up menu item", "item_id", req.ItemID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	store := h.store(r)
	if err := store.AddItem(r.Context(), *item); err != nil {
		if errors.Is(err, cart.ErrItemSoldOut) {
			writeError(w, http.StatusConflict, "This item is sold out")
			return
		}
		h.logger.Error("failed to add cart item", "item_id", req.ItemID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Could not save your cart, please try again")
		return
	}

	writeJSON(w, http.StatusOK, h.view(store))
}

// SetQuantity handles PUT /api/cart/items/{itemId}. A quantity of zero or
// less removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	// non-integer quantities fail to decode and are rejected outright
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Quantity must be an integer")
		return
	}

	store := h.store(r)
	if err := store.SetQuantity(r.Context(), itemID, req.Quantity); err != nil {
		h.logger.Error("failed to set cart quantity", "item_id", itemID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Could not save your cart, please try again")
		return
	}

	writeJSON(w, http.StatusOK, h.view(store))
}

// RemoveItem handles DELETE /api/cart/items/{itemId}; removing an item that
// is not in the cart succeeds.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	store := h.store(r)
	if err := store.RemoveItem(r.Context(), itemID); err != nil {
		h.logger.Error("failed to remove cart item", "item_id", itemID, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Could not save your cart, please try again")
		return
	}

	writeJSON(w, http.StatusOK, h.view(store))
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	if err := store.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear cart", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Could not save your cart, please try again")
		return
	}

	writeJSON(w, http.StatusOK, h.view(store))
}

// ApplyCoupon handles POST /api/cart/coupon. A failed apply clears any
// previously applied coupon so a stale discount can never linger.
func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	store := h.store(r)

	applied, err := h.coupons.Lookup(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, coupon.ErrNotFound) {
			if clearErr := store.ClearCoupon(r.Context()); clearErr != nil {
				h.logger.Warn("failed to clear coupon after invalid code", "error", clearErr)
			}
			writeError(w, http.StatusNotFound, "The coupon code you entered is invalid or has expired")
			return
		}
		h.logger.Error("coupon lookup failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Could not validate your coupon, please try again")
		return
	}

	if err := store.SetCoupon(r.Context(), applied); err != nil {
		h.logger.Error("failed to apply coupon", "code", applied.Code, "error", err)
		writeError(w, http.StatusServiceUnavailable, "Could not save your cart, please try again")
		return
	}

	h.logger.Info("coupon applied", "code", applied.Code)
	writeJSON(w, http.StatusOK, h.view(store))
}

// RemoveCoupon handles DELETE /api/cart/coupon
func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	store := h.store(r)
	if err := store.ClearCoupon(r.Context()); err != nil {
		h.logger.Error("failed to remove coupon", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Could not save your cart, please try again")
		return
	}

	writeJSON(w, http.StatusOK, h.view(store))
}
