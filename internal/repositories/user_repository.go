package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/biblioteca/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements UserRepository
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database. The user-type existence check
// and the insert run in one transaction so the reference cannot become stale
// between check and insert. A username collision is reported as
// ErrDuplicateUsername, an unresolved user type as ErrUnknownUserType.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT * FROM user_types WHERE id = ?)`
	if err := tx.QueryRowContext(ctx, checkQuery, user.UserTypeID).Scan(&exists); err != nil {
		r.logger.Error("failed to check user type existence", zap.Error(err))
		return fmt.Errorf("failed to check user type existence: %w", err)
	}
	if !exists {
		return ErrUnknownUserType
	}

	insertQuery := `
		INSERT INTO users (username, password_hash, user_type_id)
		VALUES (?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, insertQuery, user.Username, user.PasswordHash, user.UserTypeID)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrDuplicateUsername
		}
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByUsername retrieves a user by exact, case-sensitive username match.
// The user type name is resolved in the same query.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.user_type_id, t.name
		FROM users u
		JOIN user_types t ON t.id = u.user_type_id
		WHERE u.username = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.UserTypeID,
		&user.UserType,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.user_type_id, t.name
		FROM users u
		JOIN user_types t ON t.id = u.user_type_id
		WHERE u.id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.UserTypeID,
		&user.UserType,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("userId", userID))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdatePasswordHash replaces the stored password hash for a user
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, passwordHash, userID)
	if err != nil {
		r.logger.Error("failed to update password hash", zap.Error(err), zap.Int("userId", userID))
		return fmt.Errorf("failed to update password hash: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
