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

// MenuHandler handles menu-related HTTP requests, both the public catalog
// endpoints and the admin CRUD endpoints.
type MenuHandler struct {
	service *service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(service *service.MenuService, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		service: service,
		logger:  logger,
	}
}

// ListItems handles GET /api/menu with an optional ?category= filter
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Error("failed to list menu items", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// GetItem handles GET /api/menu/{itemId}
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")
	if itemID == "" {
		writeError(w, http.StatusBadRequest, "Invalid ID supplied")
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			writeError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		h.logger.Error("failed to get menu item", "item_id", itemID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// CreateItem handles POST /api/admin/menu
func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateItem(r.Context(), &item); err != nil {
		if errors.Is(err, service.ErrInvalidMenuItem) {
			writeError(w, http.StatusBadRequest, "Menu item must have a name and a non-negative price")
			return
		}
		h.logger.Error("failed to create menu item", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.logger.Info("menu item created", "item_id", item.ID, "name", item.Name)
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/admin/menu/{itemId}
func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var item models.MenuItem
	if err := decodeJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	item.ID = chi.URLParam(r, "itemId")

	if err := h.service.UpdateItem(r.Context(), &item); err != nil {
		switch {
		case errors.Is(err, repository.ErrMenuItemNotFound):
			writeError(w, http.StatusNotFound, "Menu item not found")
		case errors.Is(err, service.ErrInvalidMenuItem):
			writeError(w, http.StatusBadRequest, "Menu item must have a name and a non-negative price")
		default:
			h.logger.Error("failed to update menu item", "item_id", item.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/admin/menu/{itemId}
func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemId")

	if err := h.service.DeleteItem(r.Context(), itemID); err != nil {
		if errors.Is(err, repository.ErrMenuItemNotFound) {
			writeError(w, http.StatusNotFound, "Menu item not found")
			return
		}
		h.logger.Error("failed to delete menu item", "item_id", itemID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
