package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/repository"
	"github.com/franciscoedibles/storefront/internal/service"
)

func newMenuRouter() *chi.Mux {
	h := NewMenuHandler(service.NewMenuService(repository.NewInMemoryMenuRepository()), slog.Default())

	r := chi.NewRouter()
	r.Get("/api/menu", h.ListItems)
	r.Get("/api/menu/{itemId}", h.GetItem)
	r.Post("/api/admin/menu", h.CreateItem)
	r.Put("/api/admin/menu/{itemId}", h.UpdateItem)
	r.Delete("/api/admin/menu/{itemId}", h.DeleteItem)
	return r
}

func TestListItemsEndpoint(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantCount int
	}{
		{"full menu", "/api/menu", 6},
		{"category filter", "/api/menu?category=Drinks", 1},
		{"All category", "/api/menu?category=All", 6},
		{"unknown category", "/api/menu?category=Breakfast", 0},
	}

	router := newMenuRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			var items []models.MenuItem
			if err := json.NewDecoder(w.Body).Decode(&items); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if len(items) != tt.wantCount {
				t.Errorf("got %d items, want %d", len(items), tt.wantCount)
			}
		})
	}
}

func TestGetItemEndpoint(t *testing.T) {
	router := newMenuRouter()

	t.Run("existing item", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/menu/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}

		var item models.MenuItem
		if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if item.Name != "Jollof Rice & Chicken" {
			t.Errorf("name = %q, want %q", item.Name, "Jollof Rice & Chicken")
		}
	})

	t.Run("missing item", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/menu/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestCreateItemEndpoint(t *testing.T) {
	router := newMenuRouter()

	t.Run("valid item", func(t *testing.T) {
		body, _ := json.Marshal(models.MenuItem{Name: "Moi Moi", Price: 600, Category: "Sides"})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
		}

		var created models.MenuItem
		if err := json.NewDecoder(w.Body).Decode(&created); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if created.ID == "" {
			t.Error("expected created item to have an id")
		}
	})

	t.Run("invalid item", func(t *testing.T) {
		body, _ := json.Marshal(models.MenuItem{Name: "", Price: 600})
		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/menu", bytes.NewReader([]byte("{not json")))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestUpdateItemEndpoint(t *testing.T) {
	router := newMenuRouter()

	t.Run("flip sold out flag", func(t *testing.T) {
		body, _ := json.Marshal(models.MenuItem{Name: "Fried Plantains (Dodo)", Price: 499, Category: "Sides", SoldOut: false})
		req := httptest.NewRequest(http.MethodPut, "/api/admin/menu/3", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		body, _ := json.Marshal(models.MenuItem{Name: "Ghost Dish", Price: 100})
		req := httptest.NewRequest(http.MethodPut, "/api/admin/menu/999", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestDeleteItemEndpoint(t *testing.T) {
	router := newMenuRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/menu/6", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/menu/6", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
