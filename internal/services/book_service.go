package services

import (
	"context"

	"github.com/biblioteca/backend/internal/models"
	"go.uber.org/zap"
)

// BookRepository is the interface that wraps methods for Book table data access
type BookRepository interface {
	// Method Create inserts a new book keyed by its ISBN.
	//
	// If the referenced author does not exist, repositories.ErrUnknownAuthor
	// will be returned; if a book with the same ISBN already exists,
	// repositories.ErrDuplicateISBN will be returned. No partial insert is
	// left behind in either case.
	Create(ctx context.Context, book *models.Book) error
	// Method GetByISBN retrieves a book by its ISBN.
	//
	// If book with such ISBN does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
	// Method GetAll retrieves all books ordered by title ascending.
	GetAll(ctx context.Context) ([]models.Book, error)
}

// bookService implements catalog use-cases
type bookService struct {
	bookRepo BookRepository
	logger   *zap.Logger
}

// NewBookService creates a new book service
func NewBookService(bookRepo BookRepository, logger *zap.Logger) *bookService {
	return &bookService{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

// Create adds a new book to the catalog
func (s *bookService) Create(ctx context.Context, book *models.Book) error {
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return err
	}

	s.logger.Info("book created", zap.String("isbn", book.ISBN), zap.Int("authorId", book.AuthorID))
	return nil
}

// GetByISBN retrieves a book by its ISBN
func (s *bookService) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	return s.bookRepo.GetByISBN(ctx, isbn)
}

// GetAll retrieves all books ordered by title ascending
func (s *bookService) GetAll(ctx context.Context) ([]models.Book, error) {
	return s.bookRepo.GetAll(ctx)
}
