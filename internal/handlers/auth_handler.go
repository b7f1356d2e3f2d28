package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/biblioteca/backend/internal/auth"
	"github.com/biblioteca/backend/internal/models"
	"github.com/biblioteca/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// Caller-facing credential validation; the stores do not enforce lengths
const (
	minUsernameLength = 4
	minPasswordLength = 6
)

// Login attempts allowed per IP per minute
const loginRateLimit = 10

// AuthService is the interface that wraps methods for session authentication business logic.
type AuthService interface {
	// Method Login verifies the submitted credentials and establishes a new session.
	//
	// "username" and "password" parameters are the submitted credentials.
	//
	// If the user does not exist or the password does not match, the matching
	// typed error is returned together with empty token and "nil" user.
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	// Method Logout invalidates the session associated with the token.
	//
	// Logging out an already-invalid token is not an error.
	Logout(ctx context.Context, token string) error
	// Method Resolve maps a session token to the acting user.
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all auth handler routes.
// sessionMiddleware gates the routes that need an active session.
func (h *AuthHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.With(httprate.LimitByIP(loginRateLimit, time.Minute)).Post("/login", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware)
			r.Post("/logout", h.Logout)
			r.Get("/me", h.Me)
		})
	})
}

// Login handles POST /auth/login.
// Unknown usernames and wrong passwords are answered identically so the
// endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < minUsernameLength || len(req.Password) < minPasswordLength {
		h.RespondError(w, http.StatusBadRequest, "invalid credentials format")
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
			h.RespondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.Logger.Error("failed to login", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.setSessionCookie(w, token)
	h.RespondJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: *user})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.TokenFromRequest(r)

	if err := h.authService.Logout(r.Context(), token); err != nil {
		h.Logger.Error("failed to logout", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.clearSessionCookie(w)
	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /auth/me and returns the acting user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.GetUser(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}

// setSessionCookie sets the session token as an HTTP-only cookie
func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie
func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
