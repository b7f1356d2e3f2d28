package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/biblioteca/backend/internal/models"
	"github.com/biblioteca/backend/internal/repositories"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthorService is the interface that wraps methods for author business logic.
type AuthorService interface {
	// Method Create adds a new author and returns it with its assigned ID.
	Create(ctx context.Context, surname, givenNames, birthDate string) (*models.Author, error)
	// Method GetByID retrieves an author by ID.
	GetByID(ctx context.Context, id int) (*models.Author, error)
	// Method GetAll retrieves all authors in a stable order.
	GetAll(ctx context.Context) ([]models.Author, error)
}

// AuthorHandler handles author-related HTTP requests
type AuthorHandler struct {
	BaseHandler
	authorService AuthorService
}

// NewAuthorHandler creates a new author handler
func NewAuthorHandler(authorService AuthorService, logger *zap.Logger) *AuthorHandler {
	return &AuthorHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		authorService: authorService,
	}
}

// RegisterRoutes registers all author handler routes behind the session gate
func (h *AuthorHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/authors", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
	})
}

// Create handles POST /authors
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAuthorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Surname = strings.TrimSpace(req.Surname)
	req.GivenNames = strings.TrimSpace(req.GivenNames)
	req.BirthDate = strings.TrimSpace(req.BirthDate)
	if req.Surname == "" || req.GivenNames == "" || req.BirthDate == "" {
		h.RespondError(w, http.StatusBadRequest, "all fields are required")
		return
	}

	author, err := h.authorService.Create(r.Context(), req.Surname, req.GivenNames, req.BirthDate)
	if err != nil {
		h.Logger.Error("failed to create author", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusCreated, author)
}

// List handles GET /authors
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authorService.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("failed to list authors", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, authors)
}

// GetByID handles GET /authors/{id}.
// The identifier is an opaque integer key; non-parsable input is rejected
// here, before the service is called.
func (h *AuthorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		h.RespondError(w, http.StatusBadRequest, "invalid author id")
		return
	}

	author, err := h.authorService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "author not found")
			return
		}
		h.Logger.Error("failed to get author", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, author)
}
