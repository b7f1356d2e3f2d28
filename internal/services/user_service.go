package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/biblioteca/backend/internal/models"
	"github.com/biblioteca/backend/internal/repositories"
	"go.uber.org/zap"
)

// Username seeded for the initial administrative account
const adminUsername = "admin"

// UserTypeRepository is the interface that wraps methods for UserType table data access
type UserTypeRepository interface {
	// Method Ensure creates the user type if it does not exist and returns it.
	//
	// "name" parameter is the unique user type name.
	//
	// Repeated calls with the same name resolve to the same row.
	Ensure(ctx context.Context, name string) (*models.UserType, error)
	// Method GetByName retrieves a user type by its unique name.
	//
	// If user type with such name does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByName(ctx context.Context, name string) (*models.UserType, error)
}

// userService implements user management use-cases
type userService struct {
	userRepo     UserRepository
	userTypeRepo UserTypeRepository
	hasher       PasswordHasher
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo UserRepository,
	userTypeRepo UserTypeRepository,
	hasher PasswordHasher,
	logger *zap.Logger,
) *userService {
	return &userService{
		userRepo:     userRepo,
		userTypeRepo: userTypeRepo,
		hasher:       hasher,
		logger:       logger,
	}
}

// Create registers a new user under an existing user type. The plaintext
// password is hashed before anything is persisted and is never stored or
// logged. Duplicate usernames and unknown user types surface as the
// repositories sentinel errors.
func (s *userService) Create(ctx context.Context, username string, userTypeID int, password string) (*models.User, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		UserTypeID:   userTypeID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.Int("userId", user.ID), zap.String("username", username))
	return user, nil
}

// GetByID retrieves a user by ID
func (s *userService) GetByID(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetByUsername retrieves a user by exact username match
func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// ResetPassword re-derives the stored credential for an existing user
func (s *userService) ResetPassword(ctx context.Context, userID int, newPassword string) error {
	passwordHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePasswordHash(ctx, userID, passwordHash); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.Int("userId", userID))
	return nil
}

// Seed ensures the fixed user types exist and upserts the initial admin
// account with the configured password. Safe to run at every process start.
func (s *userService) Seed(ctx context.Context, adminPassword string) error {
	var adminType *models.UserType
	for _, name := range []string{models.UserTypeAdmin, models.UserTypeEmployee, models.UserTypeCustomer} {
		userType, err := s.userTypeRepo.Ensure(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to ensure user type %q: %w", name, err)
		}
		if name == models.UserTypeAdmin {
			adminType = userType
		}
	}

	existing, err := s.userRepo.GetByUsername(ctx, adminUsername)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			if _, err := s.Create(ctx, adminUsername, adminType.ID, adminPassword); err != nil {
				return fmt.Errorf("failed to create admin user: %w", err)
			}
			return nil
		}
		return err
	}

	// Existing admin gets the configured password on every start
	if err := s.ResetPassword(ctx, existing.ID, adminPassword); err != nil {
		return fmt.Errorf("failed to reset admin password: %w", err)
	}
	return nil
}
