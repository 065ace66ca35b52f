package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Mock credential store for testing
type mockRepository struct {
	getByEmailFunc func(ctx context.Context, email string) (*User, error)
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*User, error)
	createFunc     func(ctx context.Context, user *User) error
}

func (m *mockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func testUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	return &User{
		ID:           uuid.New(),
		Name:         "Ankit",
		Email:        "a@x.com",
		PasswordHash: string(hash),
	}
}

func newTestService(repo Repository) Service {
	return NewService(repo, NewTokenIssuer(testSecret, 7*24*time.Hour), bcrypt.MinCost)
}

func TestAuthenticate_Success(t *testing.T) {
	stored := testUser(t, "correct")
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			if email != "a@x.com" {
				return nil, ErrUserNotFound
			}
			return stored, nil
		},
	}
	svc := newTestService(repo)

	token, user, err := svc.Authenticate(context.Background(), "a@x.com", "correct")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
	if user.Email != "a@x.com" {
		t.Errorf("expected user email a@x.com, got %s", user.Email)
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("minted token failed verification: %v", err)
	}
	if claims.UserID != stored.ID.String() {
		t.Errorf("token identity %s does not match user %s", claims.UserID, stored.ID)
	}
	if lifetime := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); lifetime != 7*24*time.Hour {
		t.Errorf("expected a 7 day token lifetime, got %v", lifetime)
	}
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	stored := testUser(t, "correct")
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return stored, nil
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Authenticate(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if errors.Is(err, ErrUserNotFound) {
		t.Error("wrong password must never surface as ErrUserNotFound")
	}
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc := newTestService(&mockRepository{})

	_, _, err := svc.Authenticate(context.Background(), "missing@x.com", "anything")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthenticate_StoreFailure(t *testing.T) {
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := newTestService(repo)

	_, _, err := svc.Authenticate(context.Background(), "a@x.com", "correct")
	if err == nil {
		t.Fatal("expected an error on store failure")
	}
	if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("store failure must not surface as a credential error, got %v", err)
	}
}

func TestAuthenticate_SequentialLoginsMintDistinctTokens(t *testing.T) {
	stored := testUser(t, "correct")
	repo := &mockRepository{
		getByEmailFunc: func(ctx context.Context, email string) (*User, error) {
			return stored, nil
		},
	}
	svc := newTestService(repo)

	first, _, err := svc.Authenticate(context.Background(), "a@x.com", "correct")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, _, err := svc.Authenticate(context.Background(), "a@x.com", "correct")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if first == second {
		t.Error("two logins produced identical tokens")
	}
	for _, token := range []string{first, second} {
		if _, err := svc.VerifyToken(token); err != nil {
			t.Errorf("token failed verification: %v", err)
		}
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	var created *User
	repo := &mockRepository{
		createFunc: func(ctx context.Context, user *User) error {
			created = user
			return nil
		},
	}
	svc := newTestService(repo)

	user, err := svc.Register(context.Background(), "Ankit", "a@x.com", "correct")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if created == nil {
		t.Fatal("expected the repository to receive a user")
	}
	if created.PasswordHash == "correct" || created.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct")); err != nil {
		t.Errorf("stored hash does not verify the original password: %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("expected a generated user ID")
	}
}

func TestRegister_DuplicateEmailFromRepository(t *testing.T) {
	repo := &mockRepository{
		createFunc: func(ctx context.Context, user *User) error {
			return ErrEmailExists
		},
	}
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), "Ankit", "a@x.com", "correct")
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("expected ErrEmailExists, got %v", err)
	}
}

func TestPublicProjectionOmitsPasswordHash(t *testing.T) {
	user := testUser(t, "correct")
	public := user.Public()

	if public.Email != user.Email || public.Name != user.Name || public.ID != user.ID {
		t.Error("public projection should carry id, name, and email")
	}
}
