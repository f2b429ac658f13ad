package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/spendwise/spendwise/internal/model"
)

// ErrBudgetNotFound indicates the budget does not exist or is not
// owned by the caller.
var ErrBudgetNotFound = errors.New("budget not found")

// UpsertBudget inserts a budget or, when a row for the same
// (user, category, period) key exists, replaces its amount and refreshes
// updated_at. Merge and write happen in one statement so concurrent
// upserts cannot race.
func (r *Repository) UpsertBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error) {
	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, period, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (user_id, category_id, period)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
		RETURNING id, user_id, category_id, amount, period, created_at, updated_at
	`

	var saved model.Budget
	err := r.pool.QueryRow(ctx, query,
		budget.ID,
		budget.UserID,
		budget.CategoryID,
		budget.Amount,
		budget.Period,
	).Scan(
		&saved.ID,
		&saved.UserID,
		&saved.CategoryID,
		&saved.Amount,
		&saved.Period,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert budget: %w", err)
	}

	return &saved, nil
}

// ListBudgets returns the user's budgets joined with category details.
func (r *Repository) ListBudgets(ctx context.Context, userID string) ([]*model.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, b.amount, b.period, b.created_at, b.updated_at,
		       c.name, c.icon
		FROM budgets b
		JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY c.name ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*model.Budget
	for rows.Next() {
		var budget model.Budget
		err := rows.Scan(
			&budget.ID,
			&budget.UserID,
			&budget.CategoryID,
			&budget.Amount,
			&budget.Period,
			&budget.CreatedAt,
			&budget.UpdatedAt,
			&budget.CategoryName,
			&budget.CategoryIcon,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, &budget)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// DeleteBudget removes a budget, scoped to the owner.
func (r *Repository) DeleteBudget(ctx context.Context, userID, id string) error {
	query := `DELETE FROM budgets WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}

	return nil
}
