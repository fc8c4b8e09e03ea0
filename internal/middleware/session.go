package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the cart session id
const SessionCookie = "fe_session"

type ctxKey string

const ctxSessionID ctxKey = "session_id"

// Session assigns each visitor a stable session id via cookie and stores it
// in the request context. The cart is keyed by this id, so each browser
// session owns exactly one cart.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string

		if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
			sessionID = cookie.Value
		} else {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxSessionID, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session id stored by Session, or ""
func SessionID(ctx context.Context) string {
	if v := ctx.Value(ctxSessionID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
