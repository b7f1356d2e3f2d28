package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/biblioteca/backend/internal/models"
)

// authorRepository implements AuthorRepository
type authorRepository struct {
	db *sql.DB
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(db *sql.DB) *authorRepository {
	return &authorRepository{
		db: db,
	}
}

// Create inserts a new author into the database and assigns its id
func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	query := `
		INSERT INTO authors (surname, given_names, birth_date)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, author.Surname, author.GivenNames, author.BirthDate)
	if err != nil {
		return fmt.Errorf("failed to create author: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	author.ID = int(id)
	return nil
}

// GetByID retrieves an author by ID
func (r *authorRepository) GetByID(ctx context.Context, id int) (*models.Author, error) {
	query := `
		SELECT id, surname, given_names, birth_date
		FROM authors
		WHERE id = ?
		LIMIT 1
	`

	author := &models.Author{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&author.ID,
		&author.Surname,
		&author.GivenNames,
		&author.BirthDate,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	return author, nil
}

// GetAll retrieves all authors ordered by id ascending
func (r *authorRepository) GetAll(ctx context.Context) ([]models.Author, error) {
	query := `
		SELECT id, surname, given_names, birth_date
		FROM authors
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get authors: %w", err)
	}
	defer rows.Close()

	authors := []models.Author{}
	for rows.Next() {
		var author models.Author
		if err := rows.Scan(
			&author.ID,
			&author.Surname,
			&author.GivenNames,
			&author.BirthDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, author)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate authors: %w", err)
	}

	return authors, nil
}
