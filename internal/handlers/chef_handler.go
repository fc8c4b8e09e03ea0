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

// ChefHandler handles the public chef roster and the admin chef endpoints
type ChefHandler struct {
	service *service.ChefService
	logger  *slog.Logger
}

// NewChefHandler creates a new chef handler
func NewChefHandler(service *service.ChefService, logger *slog.Logger) *ChefHandler {
	return &ChefHandler{
		service: service,
		logger:  logger,
	}
}

// ListChefs handles GET /api/chefs
func (h *ChefHandler) ListChefs(w http.ResponseWriter, r *http.Request) {
	chefs, err := h.service.ListChefs(r.Context())
	if err != nil {
		h.logger.Error("failed to list chefs", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, chefs)
}

// CreateChef handles POST /api/admin/chefs
func (h *ChefHandler) CreateChef(w http.ResponseWriter, r *http.Request) {
	var chef models.Chef
	if err := decodeJSON(r, &chef); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateChef(r.Context(), &chef); err != nil {
		if errors.Is(err, service.ErrInvalidChef) {
			writeError(w, http.StatusBadRequest, "Chef must have a name and a valid title")
			return
		}
		h.logger.Error("failed to create chef", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, chef)
}

// UpdateChef handles PUT /api/admin/chefs/{chefId}
func (h *ChefHandler) UpdateChef(w http.ResponseWriter, r *http.Request) {
	var chef models.Chef
	if err := decodeJSON(r, &chef); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	chef.ID = chi.URLParam(r, "chefId")

	if err := h.service.UpdateChef(r.Context(), &chef); err != nil {
		switch {
		case errors.Is(err, repository.ErrChefNotFound):
			writeError(w, http.StatusNotFound, "Chef not found")
		case errors.Is(err, service.ErrInvalidChef):
			writeError(w, http.StatusBadRequest, "Chef must have a name and a valid title")
		default:
			h.logger.Error("failed to update chef", "chef_id", chef.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, chef)
}

// DeleteChef handles DELETE /api/admin/chefs/{chefId}
func (h *ChefHandler) DeleteChef(w http.ResponseWriter, r *http.Request) {
	chefID := chi.URLParam(r, "chefId")

	if err := h.service.DeleteChef(r.Context(), chefID); err != nil {
		if errors.Is(err, repository.ErrChefNotFound) {
			writeError(w, http.StatusNotFound, "Chef not found")
			return
		}
		h.logger.Error("failed to delete chef", "chef_id", chefID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
