package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/biblioteca/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupSessionTestRepository creates a session repository with a mock database
func setupSessionTestRepository(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSessionRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewSessionRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewSessionRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestSessionRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		session       *models.Session
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:    "success",
			session: &models.Session{Token: "token123", UserID: 1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WithArgs("token123", 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:    "database error",
			session: &models.Session{Token: "token123", UserID: 1},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO sessions`).
					WithArgs("token123", 1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.session)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_GetByToken(t *testing.T) {
	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name            string
		token           string
		setupMock       func(sqlmock.Sqlmock)
		expectedError   error
		expectedSession *models.Session
	}{
		{
			name:  "success",
			token: "token123",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"token", "user_id", "created_at"}).
					AddRow("token123", 1, createdAt)
				mock.ExpectQuery(`SELECT token, user_id, created_at`).
					WithArgs("token123").
					WillReturnRows(rows)
			},
			expectedSession: &models.Session{Token: "token123", UserID: 1, CreatedAt: createdAt},
		},
		{
			name:  "not found",
			token: "unknown",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT token, user_id, created_at`).
					WithArgs("unknown").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			session, err := repo.GetByToken(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedSession, session)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_DeleteByToken(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:  "success",
			token: "token123",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions WHERE token = \?`).
					WithArgs("token123").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:  "already deleted token is not an error",
			token: "stale",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions WHERE token = \?`).
					WithArgs("stale").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name:  "database error",
			token: "token123",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions WHERE token = \?`).
					WithArgs("token123").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.DeleteByToken(context.Background(), tt.token)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSessionRepository_DeleteExpired(t *testing.T) {
	cutoff := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "removes expired sessions",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions WHERE created_at <= \?`).
					WithArgs(cutoff).
					WillReturnResult(sqlmock.NewResult(0, 3))
			},
			expectedCount: 3,
		},
		{
			name: "nothing expired",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions WHERE created_at <= \?`).
					WithArgs(cutoff).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedCount: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM sessions WHERE created_at <= \?`).
					WithArgs(cutoff).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupSessionTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			count, err := repo.DeleteExpired(context.Background(), cutoff)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Zero(t, count)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedCount, count)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
