package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/biblioteca/backend/internal/models"
)

// userTypeRepository implements UserTypeRepository
type userTypeRepository struct {
	db *sql.DB
}

// NewUserTypeRepository creates a new user type repository
func NewUserTypeRepository(db *sql.DB) *userTypeRepository {
	return &userTypeRepository{
		db: db,
	}
}

// Ensure creates the user type if it does not exist and returns it.
// The upsert relies on the unique index on name, so repeated calls with the
// same name always resolve to the same row. Safe to call at every process
// start.
func (r *userTypeRepository) Ensure(ctx context.Context, name string) (*models.UserType, error) {
	// LAST_INSERT_ID(id) makes the duplicate branch report the existing row id
	query := `
		INSERT INTO user_types (name)
		VALUES (?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)
	`

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure user type: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return &models.UserType{ID: int(id), Name: name}, nil
}

// GetByName retrieves a user type by its unique name
func (r *userTypeRepository) GetByName(ctx context.Context, name string) (*models.UserType, error) {
	query := `
		SELECT id, name
		FROM user_types
		WHERE name = ?
		LIMIT 1
	`

	userType := &models.UserType{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&userType.ID,
		&userType.Name,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user type by name: %w", err)
	}

	return userType, nil
}
