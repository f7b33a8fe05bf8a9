package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"solverpro/internal/middleware"
	"solverpro/internal/models"
	"solverpro/internal/session"
	"solverpro/internal/utils"
)

type SessionManager interface {
	Authenticate(ctx context.Context, sessionID, username, password string) (bool, error)
	IsAuthenticated(ctx context.Context, sessionID string) bool
	Logout(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	sessions SessionManager
	ttl      time.Duration
	logger   *zap.Logger
}

func NewAuthHandler(sessions SessionManager, ttl time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		ttl:      ttl,
		logger:   logger,
	}
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.LoginRequest](r)

	// a fresh id on every login; a pre-login cookie value is never promoted
	sessionID := uuid.New().String()

	ok, err := h.sessions.Authenticate(r.Context(), sessionID, req.Username, req.Password)
	if err != nil {
		h.logger.Error("Failed to store session", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "session_error",
			Message: "Could not start the session",
		})
		return
	}
	if !ok {
		utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
			Code:    "invalid_credentials",
			Message: "Invalid username or password",
		})
		return
	}
	if previous := middleware.SessionID(r); previous != "" {
		if err := h.sessions.Logout(r.Context(), previous); err != nil {
			h.logger.Warn("Failed to clear previous session flag", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSON(w, http.StatusOK, models.SessionResponse{
		Authenticated: true,
		Mode:          string(session.ModeAdmin),
	})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context(), middleware.SessionID(r)); err != nil {
		// the cookie is cleared regardless; the flag expires on its own
		h.logger.Warn("Failed to clear session flag", zap.Error(err))
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	utils.JSON(w, http.StatusOK, models.SessionResponse{
		Authenticated: false,
		Mode:          string(session.ModeLogin),
	})
}

// SessionHandler tells a freshly loaded client where to start.
func (h *AuthHandler) SessionHandler(w http.ResponseWriter, r *http.Request) {
	authenticated := h.sessions.IsAuthenticated(r.Context(), middleware.SessionID(r))
	utils.JSON(w, http.StatusOK, models.SessionResponse{
		Authenticated: authenticated,
		Mode:          string(session.InitialMode(authenticated)),
	})
}

// NavigateHandler resolves a navigation intent against the current session.
func (h *AuthHandler) NavigateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.NavigateRequest](r)
	authenticated := h.sessions.IsAuthenticated(r.Context(), middleware.SessionID(r))

	current, ok := session.ParseMode(req.Mode)
	if !ok {
		current = session.InitialMode(authenticated)
	}

	utils.JSON(w, http.StatusOK, models.SessionResponse{
		Authenticated: authenticated,
		Mode:          string(session.Next(current, session.Intent(req.Intent), authenticated)),
	})
}
