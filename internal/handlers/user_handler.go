package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/biblioteca/backend/internal/models"
	"github.com/biblioteca/backend/internal/repositories"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user management business logic.
type UserService interface {
	// Method Create registers a new user under an existing user type.
	//
	// "username", "userTypeID" and "password" parameters describe the new account.
	//
	// Duplicate usernames and unknown user types surface as the repositories
	// sentinel errors.
	Create(ctx context.Context, username string, userTypeID int, password string) (*models.User, error)
	// Method ResetPassword re-derives the stored credential for an existing user.
	ResetPassword(ctx context.Context, userID int, newPassword string) error
}

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{Logger: logger},
		userService: userService,
	}
}

// RegisterRoutes registers all user handler routes. User creation is limited
// to administrators, so both the session gate and the admin policy gate apply.
func (h *UserHandler) RegisterRoutes(r chi.Router, sessionMiddleware, adminOnly func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Use(adminOnly)
		r.Post("/", h.Create)
	})
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < minUsernameLength || len(req.Password) < minPasswordLength {
		h.RespondError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if req.UserTypeID < 1 {
		h.RespondError(w, http.StatusBadRequest, "userTypeId is required")
		return
	}

	user, err := h.userService.Create(r.Context(), req.Username, req.UserTypeID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicateUsername):
			h.RespondError(w, http.StatusConflict, "username already exists")
		case errors.Is(err, repositories.ErrUnknownUserType):
			h.RespondError(w, http.StatusBadRequest, "user type does not exist")
		default:
			h.Logger.Error("failed to create user", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.RespondJSON(w, http.StatusCreated, user)
}
