// Package auth implements the credential store and session issuer for the
// storefront. Authentication verifies a submitted email/password pair
// against stored bcrypt hashes and mints a signed, time-limited session
// token; verification of issued tokens is offline.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrUserNotFound is returned when no record exists for the identity key
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned when the password does not match
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists is returned when registering an already-used email
	ErrEmailExists = errors.New("email already registered")
	// ErrTokenExpired is returned when a session token is past its expiration
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned when a session token fails verification
	ErrTokenInvalid = errors.New("invalid token")
)

// Service defines the session issuer interface
type Service interface {
	Authenticate(ctx context.Context, email, password string) (string, *User, error)
	Register(ctx context.Context, name, email, password string) (*User, error)
	VerifyToken(token string) (*Claims, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type service struct {
	repo       Repository
	issuer     *TokenIssuer
	bcryptCost int
}

// NewService creates a new session issuer backed by the given credential
// store.
func NewService(repo Repository, issuer *TokenIssuer, bcryptCost int) Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &service{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// Authenticate verifies the email/password pair and, on success, returns a
// fresh session token together with the user record. Errors distinguish an
// unknown identity from a password mismatch.
func (s *service) Authenticate(ctx context.Context, email, password string) (string, *User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, fmt.Errorf("credential store lookup failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issuer.Mint(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to mint session token: %w", err)
	}

	slog.Info("user authenticated", "user_id", user.ID)

	return token, user, nil
}

// Register creates a new user record with a bcrypt-hashed password.
func (s *service) Register(ctx context.Context, name, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID)

	return user, nil
}

// VerifyToken validates a session token offline and returns its claims.
func (s *service) VerifyToken(token string) (*Claims, error) {
	return s.issuer.Verify(token)
}

// GetUserByID retrieves a user record by ID.
func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}
