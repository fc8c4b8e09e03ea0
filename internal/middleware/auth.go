package middleware

import (
	"net/http"

	"github.com/franciscoedibles/storefront/internal/config"
)

// AdminAuth validates the back-office API key passed in the "api_key"
// header. Customer-facing routes are left open; everything under
// /api/admin goes through this.
func AdminAuth(cfg config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")

			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}

			valid := false
			for _, validKey := range cfg.AdminAPIKeys {
				if apiKey == validKey {
					valid = true
					break
				}
			}

			if !valid {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
