package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ajoapp/backend/internal/models"
	"github.com/ajoapp/backend/internal/storage"
)

// memoryUserStore is a map-backed UserStorage for tests.
type memoryUserStore struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{
		byEmail: make(map[string]*models.User),
		byID:    make(map[string]*models.User),
	}
}

func (s *memoryUserStore) CreateUser(ctx context.Context, u *models.User) error {
	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
	return nil
}

func (s *memoryUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (s *memoryUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func TestRegister(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUserStore())
	ctx := context.Background()

	user, err := a.Register(ctx, "alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated user id")
	}
	if user.PasswordHash == "password123" {
		t.Error("password stored in plaintext")
	}

	if _, err := a.Register(ctx, "alice@example.com", "Alice Again", "password123"); !errors.Is(err, ErrEmailExists) {
		t.Errorf("duplicate email: got %v, want ErrEmailExists", err)
	}
	if _, err := a.Register(ctx, "bob@example.com", "Bob", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("weak password: got %v, want ErrWeakPassword", err)
	}
}

func TestAuthenticate(t *testing.T) {
	a := NewPasswordAuthenticator(newMemoryUserStore())
	ctx := context.Background()

	registered, err := a.Register(ctx, "alice@example.com", "Alice", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := a.Authenticate(ctx, "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user id = %s, want %s", user.ID, registered.ID)
	}

	if _, err := a.Authenticate(ctx, "alice@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Authenticate(ctx, "ghost@example.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want ErrInvalidCredentials", err)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestJWTValidationFailures(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	t.Run("garbage token", func(t *testing.T) {
		if _, err := m.Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		token, err := other.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Hour)
		token, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})
}
