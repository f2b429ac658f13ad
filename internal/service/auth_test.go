package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/repository"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(_ context.Context, user *model.User) error {
	if _, exists := f.byEmail[user.Email]; exists {
		return repository.ErrEmailTaken
	}
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newAuthService() (*AuthService, *fakeUserStore) {
	store := newFakeUserStore()
	return NewAuthService(store, "test-secret", time.Hour), store
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newAuthService()

	user, token, err := svc.Register(context.Background(), "New@Example.com", "longenough", "Ada")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if user.Email != "new@example.com" {
		t.Errorf("expected normalized email, got %s", user.Email)
	}
	if user.PasswordHash == "longenough" {
		t.Error("password must not be stored in plain text")
	}

	authCtx, err := auth.ParseToken(token, "test-secret")
	if err != nil {
		t.Fatalf("issued token should parse: %v", err)
	}
	if authCtx.UserID != user.ID {
		t.Errorf("token subject mismatch: %s != %s", authCtx.UserID, user.ID)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"bad_email", "not-an-email", "longenough", ErrInvalidEmail},
		{"empty_email", "", "longenough", ErrInvalidEmail},
		{"short_password", "a@example.com", "short", ErrPasswordTooShort},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := svc.Register(context.Background(), test.email, test.password, "")
			if !errors.Is(err, test.wantErr) {
				t.Errorf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	if _, _, err := svc.Register(context.Background(), "dup@example.com", "longenough", ""); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, _, err := svc.Register(context.Background(), "dup@example.com", "longenough", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()

	if _, _, err := svc.Register(context.Background(), "ada@example.com", "longenough", "Ada"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "ada@example.com", "longenough")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Email != "ada@example.com" || token == "" {
		t.Error("expected user and token from login")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newAuthService()

	if _, _, err := svc.Register(context.Background(), "ada@example.com", "longenough", ""); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Wrong password and unknown email yield the same error.
	_, _, wrongPass := svc.Login(context.Background(), "ada@example.com", "wrong-password")
	_, _, unknown := svc.Login(context.Background(), "ghost@example.com", "longenough")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknown, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", unknown)
	}
}
