package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/biblioteca/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupUserTypeTestRepository creates a user type repository with a mock database
func setupUserTypeTestRepository(t *testing.T) (*userTypeRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewUserTypeRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewUserTypeRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewUserTypeRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestUserTypeRepository_Ensure(t *testing.T) {
	tests := []struct {
		name          string
		typeName      string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedType  *models.UserType
	}{
		{
			name:     "creates new type",
			typeName: models.UserTypeAdmin,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_types`).
					WithArgs(models.UserTypeAdmin).
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
			expectedType: &models.UserType{ID: 1, Name: models.UserTypeAdmin},
		},
		{
			name:     "resolves existing type to its row",
			typeName: models.UserTypeCustomer,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_types`).
					WithArgs(models.UserTypeCustomer).
					WillReturnResult(sqlmock.NewResult(3, 0))
			},
			expectedType: &models.UserType{ID: 3, Name: models.UserTypeCustomer},
		},
		{
			name:     "database error",
			typeName: models.UserTypeEmployee,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO user_types`).
					WithArgs(models.UserTypeEmployee).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTypeTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			userType, err := repo.Ensure(context.Background(), tt.typeName)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, userType)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedType, userType)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserTypeRepository_GetByName(t *testing.T) {
	tests := []struct {
		name          string
		typeName      string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedType  *models.UserType
	}{
		{
			name:     "success",
			typeName: models.UserTypeEmployee,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name"}).
					AddRow(2, models.UserTypeEmployee)
				mock.ExpectQuery(`SELECT id, name`).
					WithArgs(models.UserTypeEmployee).
					WillReturnRows(rows)
			},
			expectedType: &models.UserType{ID: 2, Name: models.UserTypeEmployee},
		},
		{
			name:     "not found",
			typeName: "visitor",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name`).
					WithArgs("visitor").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTypeTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			userType, err := repo.GetByName(context.Background(), tt.typeName)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, userType)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedType, userType)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
