package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/biblioteca/backend/internal/auth"
	"github.com/biblioteca/backend/internal/models"
	"github.com/biblioteca/backend/internal/repositories"
	"go.uber.org/zap"
)

// Typed authentication failures. ErrUserNotFound and ErrInvalidCredentials
// are distinct so logs can tell them apart, but handlers must present them
// identically to avoid username enumeration.
var (
	// ErrUserNotFound is returned when the submitted username does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned when the submitted password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned when a session token does not resolve to a user.
	ErrUnauthenticated = errors.New("authentication required")
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is assigned on success.
	//
	// If the username is taken or the user type does not exist, the matching
	// repositories sentinel error is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by exact username match.
	//
	// "username" parameter is used to retrieve a user by username.
	//
	// If user with such username does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method UpdatePasswordHash replaces the stored password hash for a user.
	//
	// "userID" parameter identifies the user, "passwordHash" is the new derived hash.
	//
	// If user with such ID does not exist, repositories.ErrNotFound will be returned.
	UpdatePasswordHash(ctx context.Context, userID int, passwordHash string) error
}

// SessionRepository is the interface that wraps methods for Session table data access
type SessionRepository interface {
	// Method Create inserts a new session into the database.
	//
	// "session" parameter carries the opaque token and the user it is bound to.
	//
	// If some error occurs during session creation, the error will be returned.
	Create(ctx context.Context, session *models.Session) error
	// Method GetByToken retrieves a session by its token.
	//
	// "token" parameter is used to retrieve a session by token.
	//
	// If session with such token does not exist, repositories.ErrNotFound will be returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// Method DeleteByToken deletes a session by its token.
	//
	// "token" parameter is used to delete a session by token.
	//
	// Deleting an already-invalid token is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Method DeleteExpired deletes all sessions created at or before cutoff.
	//
	// "cutoff" parameter is the creation-time threshold.
	//
	// Returns how many sessions were removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// PasswordHasher derives and verifies password credentials
type PasswordHasher interface {
	// Method Hash derives a salted one-way hash of the password.
	Hash(password string) (string, error)
	// Method Verify checks the password against the stored hash.
	// A mismatch is a normal false result, not an error.
	Verify(password, encodedHash string) (bool, error)
}

// authService implements session authentication
type authService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	hasher      PasswordHasher
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	hasher PasswordHasher,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		logger:      logger,
	}
}

// Login verifies the submitted credentials and establishes a new session.
// On success it returns the opaque session token and the authenticated user.
// Concurrent logins for the same user are independent; each call produces
// its own session.
func (s *authService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("login attempt for unknown username", zap.String("username", username))
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.logger.Warn("login attempt with wrong password", zap.String("username", username))
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return "", nil, err
	}

	if err := s.sessionRepo.Create(ctx, &models.Session{Token: token, UserID: user.ID}); err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", zap.Int("userId", user.ID), zap.String("username", username))
	return token, user, nil
}

// Logout invalidates the session associated with the token. Idempotent:
// logging out an already-invalid token succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// Resolve maps a session token to the acting user. An unknown, empty or
// dangling token resolves to ErrUnauthenticated, never to a storage error.
func (s *authService) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

// CleanExpiredSessions deletes sessions older than ttl and returns how many
// were removed
func (s *authService) CleanExpiredSessions(ctx context.Context, ttl time.Duration) (int, error) {
	deleted, err := s.sessionRepo.DeleteExpired(ctx, time.Now().Add(-ttl))
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.logger.Info("expired sessions deleted", zap.Int("count", deleted))
	}
	return deleted, nil
}
