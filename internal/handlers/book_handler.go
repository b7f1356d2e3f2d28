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

// BookService is the interface that wraps methods for catalog business logic.
type BookService interface {
	// Method Create adds a new book to the catalog.
	//
	// If the referenced author does not exist or the ISBN is already taken,
	// the matching repositories sentinel error is returned.
	Create(ctx context.Context, book *models.Book) error
	// Method GetByISBN retrieves a book by its ISBN.
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	// Method GetAll retrieves all books ordered by title ascending.
	GetAll(ctx context.Context) ([]models.Book, error)
}

// BookHandler handles catalog HTTP requests
type BookHandler struct {
	BaseHandler
	bookService BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService BookService, logger *zap.Logger) *BookHandler {
	return &BookHandler{
		BaseHandler: BaseHandler{Logger: logger},
		bookService: bookService,
	}
}

// RegisterRoutes registers all book handler routes behind the session gate
func (h *BookHandler) RegisterRoutes(r chi.Router, sessionMiddleware func(http.Handler) http.Handler) {
	r.Route("/books", func(r chi.Router) {
		r.Use(sessionMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{isbn}", h.GetByISBN)
	})
}

// Create handles POST /books
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.ISBN = strings.TrimSpace(req.ISBN)
	req.Title = strings.TrimSpace(req.Title)
	if req.ISBN == "" || req.Title == "" {
		h.RespondError(w, http.StatusBadRequest, "all fields are required")
		return
	}
	if req.AuthorID < 1 {
		h.RespondError(w, http.StatusBadRequest, "invalid author id")
		return
	}
	if req.EditionPrice < 0 {
		h.RespondError(w, http.StatusBadRequest, "edition price cannot be negative")
		return
	}

	book := &models.Book{
		ISBN:         req.ISBN,
		Title:        req.Title,
		AuthorID:     req.AuthorID,
		EditionYear:  req.EditionYear,
		EditionPrice: req.EditionPrice,
	}

	if err := h.bookService.Create(r.Context(), book); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUnknownAuthor):
			h.RespondError(w, http.StatusBadRequest, "author does not exist")
		case errors.Is(err, repositories.ErrDuplicateISBN):
			h.RespondError(w, http.StatusConflict, "a book with this isbn already exists")
		default:
			h.Logger.Error("failed to create book", zap.Error(err), zap.String("isbn", req.ISBN))
			h.RespondError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.RespondJSON(w, http.StatusCreated, book)
}

// List handles GET /books
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.bookService.GetAll(r.Context())
	if err != nil {
		h.Logger.Error("failed to list books", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, books)
}

// GetByISBN handles GET /books/{isbn}
func (h *BookHandler) GetByISBN(w http.ResponseWriter, r *http.Request) {
	isbn := chi.URLParam(r, "isbn")

	book, err := h.bookService.GetByISBN(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			h.RespondError(w, http.StatusNotFound, "book not found")
			return
		}
		h.Logger.Error("failed to get book", zap.Error(err), zap.String("isbn", isbn))
		h.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.RespondJSON(w, http.StatusOK, book)
}
