package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/biblioteca/backend/internal/models"
	"go.uber.org/zap"
)

// bookRepository implements BookRepository
type bookRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *sql.DB, logger *zap.Logger) *bookRepository {
	return &bookRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new book keyed by its ISBN. The author-existence check and
// the insert run in one transaction: a missing author is reported as
// ErrUnknownAuthor before anything is written, and a concurrent create with
// the same ISBN surfaces as ErrDuplicateISBN through the primary key. Either
// way no partial insert is left behind.
func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var authorID int
	checkQuery := `SELECT id FROM authors WHERE id = ? LIMIT 1`
	err = tx.QueryRowContext(ctx, checkQuery, book.AuthorID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return ErrUnknownAuthor
	}
	if err != nil {
		r.logger.Error("failed to check author existence", zap.Error(err), zap.Int("authorId", book.AuthorID))
		return fmt.Errorf("failed to check author existence: %w", err)
	}

	insertQuery := `
		INSERT INTO books (isbn, title, author_id, edition_year, edition_price)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := tx.ExecContext(ctx, insertQuery, book.ISBN, book.Title, book.AuthorID, book.EditionYear, book.EditionPrice); err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateISBN
		}
		r.logger.Error("failed to create book", zap.Error(err), zap.String("isbn", book.ISBN))
		return fmt.Errorf("failed to create book: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByISBN retrieves a book by its ISBN
func (r *bookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	query := `
		SELECT isbn, title, author_id, edition_year, edition_price
		FROM books
		WHERE isbn = ?
		LIMIT 1
	`

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, isbn).Scan(
		&book.ISBN,
		&book.Title,
		&book.AuthorID,
		&book.EditionYear,
		&book.EditionPrice,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get book by isbn", zap.Error(err), zap.String("isbn", isbn))
		return nil, fmt.Errorf("failed to get book by isbn: %w", err)
	}

	return book, nil
}

// GetAll retrieves all books ordered by title ascending. The title column
// uses a binary collation so the order is deterministic byte order; the ISBN
// breaks ties between identical titles.
func (r *bookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	query := `
		SELECT isbn, title, author_id, edition_year, edition_price
		FROM books
		ORDER BY title ASC, isbn ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get books: %w", err)
	}
	defer rows.Close()

	books := []models.Book{}
	for rows.Next() {
		var book models.Book
		if err := rows.Scan(
			&book.ISBN,
			&book.Title,
			&book.AuthorID,
			&book.EditionYear,
			&book.EditionPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate books: %w", err)
	}

	return books, nil
}
