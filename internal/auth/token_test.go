package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/spendwise/spendwise/internal/model"
)

const testSecret = "unit-test-secret"

func testUser() *model.User {
	return &model.User{
		ID:    "4f9c2505-1c2e-4c3a-9a10-1b2f3c4d5e6f",
		Email: "user@example.com",
	}
}

func TestSignAndParseToken(t *testing.T) {
	t.Parallel()

	token, err := SignToken(testSecret, time.Hour, testUser())
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	authCtx, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if authCtx.UserID != testUser().ID {
		t.Errorf("expected user id %s, got %s", testUser().ID, authCtx.UserID)
	}
	if authCtx.Email != "user@example.com" {
		t.Errorf("expected email user@example.com, got %s", authCtx.Email)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignToken(testSecret, time.Hour, testUser())
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	if _, err := ParseToken(token, "a-different-secret"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := SignToken(testSecret, -time.Minute, testUser())
	if err != nil {
		t.Fatalf("SignToken failed: %v", err)
	}

	if _, err := ParseToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not.a.token", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestSignToken_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := SignToken("", time.Hour, testUser()); err == nil {
		t.Error("expected error for empty secret")
	}
}
