package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscoedibles/storefront/internal/cart"
	"github.com/franciscoedibles/storefront/internal/coupon"
	"github.com/franciscoedibles/storefront/internal/middleware"
	"github.com/franciscoedibles/storefront/internal/models"
	"github.com/franciscoedibles/storefront/internal/pricing"
	"github.com/franciscoedibles/storefront/internal/repository"
	"github.com/franciscoedibles/storefront/internal/service"
)

type cartTestView struct {
	Lines       []cart.Line    `json:"lines"`
	Coupon      *models.Coupon `json:"coupon"`
	Subtotal    int64          `json:"subtotal"`
	Discount    int64          `json:"discount"`
	DeliveryFee int64          `json:"deliveryFee"`
	Total       int64          `json:"total"`
}

func newCartRouter(t *testing.T) *chi.Mux {
	t.Helper()

	menuRepo := repository.NewInMemoryMenuRepository()
	couponRepo := repository.NewInMemoryCouponRepository()
	directory := coupon.NewDirectory(couponRepo)
	require.NoError(t, directory.Reload(context.Background()))

	h := NewCartHandler(
		cart.NewManager(repository.NewInMemoryCartRepository()),
		service.NewMenuService(menuRepo),
		directory,
		pricing.NewEngine(500),
		slog.Default(),
	)

	r := chi.NewRouter()
	r.Use(middleware.Session)
	r.Get("/api/cart", h.GetCart)
	r.Post("/api/cart/items", h.AddItem)
	r.Put("/api/cart/items/{itemId}", h.SetQuantity)
	r.Delete("/api/cart/items/{itemId}", h.RemoveItem)
	r.Delete("/api/cart", h.ClearCart)
	r.Post("/api/cart/coupon", h.ApplyCoupon)
	r.Delete("/api/cart/coupon", h.RemoveCoupon)
	return r
}

// doCart sends a request carrying a fixed session cookie and decodes the
// cart view on success.
func doCart(t *testing.T, router http.Handler, method, url string, body any) (int, cartTestView) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, url, reader)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "test-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var view cartTestView
	if w.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	}
	return w.Code, view
}

func TestCartFlow(t *testing.T) {
	router := newCartRouter(t)

	code, view := doCart(t, router, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.Total)

	// add the same item twice, quantities merge
	code, _ = doCart(t, router, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "1"})
	require.Equal(t, http.StatusOK, code)
	code, view = doCart(t, router, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "1"})
	require.Equal(t, http.StatusOK, code)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.Equal(t, int64(3198), view.Subtotal)
	assert.Equal(t, int64(500), view.DeliveryFee)
	assert.Equal(t, int64(3698), view.Total)

	// quantity update
	code, view = doCart(t, router, http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5, view.Lines[0].Quantity)

	// quantity zero removes the line and the fee disappears with it
	code, view = doCart(t, router, http.MethodPut, "/api/cart/items/1", map[string]int{"quantity": 0})
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, view.Lines)
	assert.Zero(t, view.DeliveryFee)
	assert.Zero(t, view.Total)
}

func TestAddItemErrors(t *testing.T) {
	router := newCartRouter(t)

	t.Run("unknown item", func(t *testing.T) {
		code, _ := doCart(t, router, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "999"})
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("sold out item", func(t *testing.T) {
		code, _ := doCart(t, router, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "3"})
		assert.Equal(t, http.StatusConflict, code)
	})

	t.Run("missing item id", func(t *testing.T) {
		code, _ := doCart(t, router, http.MethodPost, "/api/cart/items", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestSetQuantityRejectsNonInteger(t *testing.T) {
	router := newCartRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/1", bytes.NewReader([]byte(`{"quantity": "two"}`)))
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "test-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApplyCoupon(t *testing.T) {
	router := newCartRouter(t)

	code, _ := doCart(t, router, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "1"})
	require.Equal(t, http.StatusOK, code)

	t.Run("valid percentage code", func(t *testing.T) {
		code, view := doCart(t, router, http.MethodPost, "/api/cart/coupon", map[string]string{"code": "welcome10"})
		require.Equal(t, http.StatusOK, code)
		require.NotNil(t, view.Coupon)
		assert.Equal(t, "WELCOME10", view.Coupon.Code)
		assert.Equal(t, int64(159), view.Discount)
		assert.Equal(t, int64(1599-159+500), view.Total)
	})

	t.Run("invalid code clears the applied coupon", func(t *testing.T) {
		code, _ := doCart(t, router, http.MethodPost, "/api/cart/coupon", map[string]string{"code": "NOSUCH"})
		assert.Equal(t, http.StatusNotFound, code)

		code, view := doCart(t, router, http.MethodGet, "/api/cart", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, view.Coupon)
		assert.Zero(t, view.Discount)
	})

	t.Run("remove coupon", func(t *testing.T) {
		code, _ := doCart(t, router, http.MethodPost, "/api/cart/coupon", map[string]string{"code": "NAIRA10"})
		require.Equal(t, http.StatusOK, code)

		code, view := doCart(t, router, http.MethodDelete, "/api/cart/coupon", nil)
		require.Equal(t, http.StatusOK, code)
		assert.Nil(t, view.Coupon)
	})
}

func TestClearCartDropsCoupon(t *testing.T) {
	router := newCartRouter(t)

	code, _ := doCart(t, router, http.MethodPost, "/api/cart/items", map[string]string{"itemId": "1"})
	require.Equal(t, http.StatusOK, code)
	code, _ = doCart(t, router, http.MethodPost, "/api/cart/coupon", map[string]string{"code": "WELCOME10"})
	require.Equal(t, http.StatusOK, code)

	code, view := doCart(t, router, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, view.Lines)
	assert.Nil(t, view.Coupon)
}

func TestCartsAreSessionScoped(t *testing.T) {
	router := newCartRouter(t)

	addAs := func(session, itemID string) {
		body, _ := json.Marshal(map[string]string{"itemId": itemID})
		req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(body))
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	getAs := func(session string) cartTestView {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var view cartTestView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		return view
	}

	addAs("session-a", "1")
	addAs("session-b", "2")

	a := getAs("session-a")
	b := getAs("session-b")
	require.Len(t, a.Lines, 1)
	require.Len(t, b.Lines, 1)
	assert.Equal(t, "1", a.Lines[0].ItemID)
	assert.Equal(t, "2", b.Lines[0].ItemID)
}

func TestSessionCookieMinted(t *testing.T) {
	router := newCartRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var minted *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			minted = c
		}
	}
	require.NotNil(t, minted, "expected a %s cookie on first visit", middleware.SessionCookie)
	assert.NotEmpty(t, minted.Value)
	assert.True(t, minted.HttpOnly)
}
