package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/spendwise/spendwise/internal/model"
)

// ErrInsightNotFound indicates the user has no cached audit result.
var ErrInsightNotFound = errors.New("insight not found")

// UpsertInsight stores the latest AI audit result for a user,
// replacing any previous one.
func (r *Repository) UpsertInsight(ctx context.Context, insight *model.Insight) error {
	query := `
		INSERT INTO insights (id, user_id, items, generated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET items = EXCLUDED.items, generated_at = EXCLUDED.generated_at
	`

	_, err := r.pool.Exec(ctx, query,
		insight.ID,
		insight.UserID,
		pq.Array(insight.Items),
		insight.GeneratedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert insight: %w", err)
	}

	return nil
}

// GetInsight returns the user's cached audit result.
func (r *Repository) GetInsight(ctx context.Context, userID string) (*model.Insight, error) {
	query := `
		SELECT id, user_id, items, generated_at
		FROM insights
		WHERE user_id = $1
	`

	var insight model.Insight
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&insight.ID,
		&insight.UserID,
		pq.Array(&insight.Items),
		&insight.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInsightNotFound
		}
		return nil, fmt.Errorf("failed to get insight: %w", err)
	}

	return &insight, nil
}
