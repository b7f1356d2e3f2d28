package services

import (
	"context"

	"github.com/biblioteca/backend/internal/models"
	"go.uber.org/zap"
)

// AuthorRepository is the interface that wraps methods for Author table data access
type AuthorRepository interface {
	// Method Create inserts a new author into the database and assigns its ID.
	Create(ctx context.Context, author *models.Author) error
	// Method GetByID retrieves an author by ID.
	//
	// If author with such ID does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.Author, error)
	// Method GetAll retrieves all authors in a stable order.
	GetAll(ctx context.Context) ([]models.Author, error)
}

// authorService implements author use-cases
type authorService struct {
	authorRepo AuthorRepository
	logger     *zap.Logger
}

// NewAuthorService creates a new author service
func NewAuthorService(authorRepo AuthorRepository, logger *zap.Logger) *authorService {
	return &authorService{
		authorRepo: authorRepo,
		logger:     logger,
	}
}

// Create adds a new author. Field-level validation (non-empty surname and
// given names) belongs to the caller; the birth date is stored as provided.
func (s *authorService) Create(ctx context.Context, surname, givenNames, birthDate string) (*models.Author, error) {
	author := &models.Author{
		Surname:    surname,
		GivenNames: givenNames,
		BirthDate:  birthDate,
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		return nil, err
	}

	s.logger.Info("author created", zap.Int("authorId", author.ID))
	return author, nil
}

// GetByID retrieves an author by ID
func (s *authorService) GetByID(ctx context.Context, id int) (*models.Author, error) {
	return s.authorRepo.GetByID(ctx, id)
}

// GetAll retrieves all authors
func (s *authorService) GetAll(ctx context.Context) ([]models.Author, error) {
	return s.authorRepo.GetAll(ctx)
}
