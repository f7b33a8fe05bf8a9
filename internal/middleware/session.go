package middleware

import (
	"context"
	"net/http"

	"solverpro/internal/models"
	"solverpro/internal/utils"
)

// SessionCookie carries the opaque per-browser session id.
const SessionCookie = "solverpro_session"

// Authenticator answers whether a session holds the admin flag.
type Authenticator interface {
	IsAuthenticated(ctx context.Context, sessionID string) bool
}

// SessionID returns the session cookie value, or "" when absent.
func SessionID(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireAdmin rejects requests whose session is not authenticated.
func RequireAdmin(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.IsAuthenticated(r.Context(), SessionID(r)) {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: "Admin login required",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
