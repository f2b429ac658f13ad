// Package testutil provides helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/spendwise/spendwise/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 581581

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// TruncateAll empties every application table between tests.
// Global seed categories survive because only user-owned rows reference users.
func TruncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	// users cascades to expenses, budgets, savings_goals, insights and
	// user-owned categories.
	if _, err := pool.Exec(ctx, "DELETE FROM users"); err != nil {
		return fmt.Errorf("truncate users: %w", err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// NewTestUser builds a user row with a unique email.
func NewTestUser(t testing.TB) *model.User {
	t.Helper()
	id := uuid.New().String()
	return &model.User{
		ID:           id,
		Email:        fmt.Sprintf("test-%s@example.com", id[:8]),
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
		Name:         "Test User",
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestExpense builds an expense row owned by the given user.
func NewTestExpense(t testing.TB, userID string, amount float64, at time.Time) *model.Expense {
	t.Helper()
	return &model.Expense{
		ID:           uuid.New().String(),
		UserID:       userID,
		Amount:       amount,
		Description:  "test expense",
		MerchantName: "Test Merchant",
		CreatedAt:    at,
	}
}

// NewTestGoal builds a savings goal owned by the given user.
func NewTestGoal(t testing.TB, userID string, target float64) *model.SavingsGoal {
	t.Helper()
	return &model.SavingsGoal{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         "Test Goal",
		TargetAmount: target,
		Color:        "#10B981",
		Icon:         "🎯",
		CreatedAt:    time.Now().UTC(),
	}
}
