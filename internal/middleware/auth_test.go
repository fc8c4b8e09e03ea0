package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscoedibles/storefront/internal/config"
)

func TestAdminAuth(t *testing.T) {
	cfg := config.AuthConfig{AdminAPIKeys: []string{"key-one", "key-two"}}

	handler := AdminAuth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		apiKey     string
		wantStatus int
	}{
		{"missing key", "", http.StatusUnauthorized},
		{"invalid key", "wrong-key", http.StatusForbidden},
		{"first valid key", "key-one", http.StatusOK},
		{"second valid key", "key-two", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
			if tt.apiKey != "" {
				req.Header.Set("api_key", tt.apiKey)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	var captured string
	handler := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = SessionID(r.Context())
	}))

	t.Run("mints a cookie for new visitors", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if captured == "" {
			t.Fatal("expected a session id in the request context")
		}

		cookies := w.Result().Cookies()
		if len(cookies) != 1 || cookies[0].Name != SessionCookie {
			t.Fatalf("expected a single %s cookie, got %v", SessionCookie, cookies)
		}
		if cookies[0].Value != captured {
			t.Errorf("cookie value %q does not match context session id %q", cookies[0].Value, captured)
		}
	})

	t.Run("reuses an existing cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "existing-session"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if captured != "existing-session" {
			t.Errorf("session id = %q, want %q", captured, "existing-session")
		}
		if len(w.Result().Cookies()) != 0 {
			t.Error("no new cookie should be set when one is presented")
		}
	})
}

func TestSessionIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := SessionID(req.Context()); got != "" {
		t.Errorf("SessionID on bare context = %q, want empty", got)
	}
}
