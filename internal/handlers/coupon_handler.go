package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/franciscoedibles/storefront/internal/coupon"
	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
)

// CouponHandler handles the admin coupon endpoints. Every write reloads the
// directory's negative cache so lookups track the directory immediately.
type CouponHandler struct {
	repo      repository.CouponRepository
	directory *coupon.Directory
	logger    *slog.Logger
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(repo repository.CouponRepository, directory *coupon.Directory, logger *slog.Logger) *CouponHandler {
	return &CouponHandler{
		repo:      repo,
		directory: directory,
		logger:    logger,
	}
}

// ListCoupons handles GET /api/admin/coupons
func (h *CouponHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.repo.GetAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list coupons", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, coupons)
}

// CreateCoupon handles POST /api/admin/coupons
func (h *CouponHandler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var c models.Coupon
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg, ok := validateCoupon(&c); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	if err := h.repo.Create(r.Context(), &c); err != nil {
		h.logger.Error("failed to create coupon", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.reloadDirectory(r)
	writeJSON(w, http.StatusCreated, c)
}

// UpdateCoupon handles PUT /api/admin/coupons/{couponId}
func (h *CouponHandler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	var c models.Coupon
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	c.ID = chi.URLParam(r, "couponId")

	if msg, ok := validateCoupon(&c); !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.repo.Update(r.Context(), &c); err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			writeError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		h.logger.Error("failed to update coupon", "coupon_id", c.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.reloadDirectory(r)
	writeJSON(w, http.StatusOK, c)
}

// DeleteCoupon handles DELETE /api/admin/coupons/{couponId}
func (h *CouponHandler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	couponID := chi.URLParam(r, "couponId")

	if err := h.repo.Delete(r.Context(), couponID); err != nil {
		if errors.Is(err, repository.ErrCouponNotFound) {
			writeError(w, http.StatusNotFound, "Coupon not found")
			return
		}
		h.logger.Error("failed to delete coupon", "coupon_id", couponID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.reloadDirectory(r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *CouponHandler) reloadDirectory(r *http.Request) {
	if err := h.directory.Reload(r.Context()); err != nil {
		// stale filter only costs extra lookups; the repository stays authoritative
		h.logger.Warn("failed to reload coupon directory", "error", err)
	}
}

func validateCoupon(c *models.Coupon) (string, bool) {
	c.Code = coupon.Canonicalize(c.Code)
	if c.Code == "" {
		return "Coupon code is required", false
	}
	if !c.DiscountType.Valid() {
		return "Discount type must be percentage or fixed", false
	}
	if c.DiscountValue < 0 {
		return "Discount value must not be negative", false
	}
	if c.DiscountType == models.DiscountPercentage && c.DiscountValue > 100 {
		return "Percentage discount cannot exceed 100", false
	}
	if strings.ContainsAny(c.Code, " \t") {
		return "Coupon code must not contain spaces", false
	}
	return "", true
}
