package services

import (
	"context"
	"errors"
	"testing"

	"github.com/biblioteca/backend/internal/models"
	"github.com/biblioteca/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockAuthorRepository is a mock implementation of AuthorRepository
type mockAuthorRepository struct {
	author    *models.Author
	authors   []models.Author
	err       error
	createErr error
}

func (m *mockAuthorRepository) Create(ctx context.Context, author *models.Author) error {
	if m.createErr != nil {
		return m.createErr
	}
	author.ID = 1
	return nil
}

func (m *mockAuthorRepository) GetByID(ctx context.Context, id int) (*models.Author, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.author, nil
}

func (m *mockAuthorRepository) GetAll(ctx context.Context) ([]models.Author, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.authors, nil
}

func TestNewAuthorService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	authorRepo := &mockAuthorRepository{}

	svc := NewAuthorService(authorRepo, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, authorRepo, svc.authorRepo)
	assert.Equal(t, logger, svc.logger)
}

func TestAuthorService_Create(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("success", func(t *testing.T) {
		svc := NewAuthorService(&mockAuthorRepository{}, logger)

		author, err := svc.Create(context.Background(), "Lem", "Stanislaw", "1921-09-12")

		require.NoError(t, err)
		assert.Equal(t, 1, author.ID)
		assert.Equal(t, "Lem", author.Surname)
		assert.Equal(t, "Stanislaw", author.GivenNames)
		assert.Equal(t, "1921-09-12", author.BirthDate)
	})

	t.Run("database error", func(t *testing.T) {
		svc := NewAuthorService(&mockAuthorRepository{createErr: errors.New("database error")}, logger)

		author, err := svc.Create(context.Background(), "Lem", "Stanislaw", "1921-09-12")

		assert.Error(t, err)
		assert.Nil(t, author)
	})
}

func TestAuthorService_GetByID(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	t.Run("success", func(t *testing.T) {
		want := &models.Author{ID: 1, Surname: "Lem", GivenNames: "Stanislaw", BirthDate: "1921-09-12"}
		svc := NewAuthorService(&mockAuthorRepository{author: want}, logger)

		author, err := svc.GetByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, want, author)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewAuthorService(&mockAuthorRepository{err: repositories.ErrNotFound}, logger)

		author, err := svc.GetByID(context.Background(), 42)

		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.Nil(t, author)
	})
}

func TestAuthorService_GetAll(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	want := []models.Author{
		{ID: 1, Surname: "Lem", GivenNames: "Stanislaw", BirthDate: "1921-09-12"},
		{ID: 2, Surname: "Tolkien", GivenNames: "John Ronald Reuel", BirthDate: "1892-01-03"},
	}
	svc := NewAuthorService(&mockAuthorRepository{authors: want}, logger)

	authors, err := svc.GetAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, authors)
}
