package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spendwise/spendwise/internal/model"
)

// ErrGoalNotFound indicates the savings goal does not exist or is not
// owned by the caller.
var ErrGoalNotFound = errors.New("savings goal not found")

// CreateGoal inserts a new savings goal.
func (r *Repository) CreateGoal(ctx context.Context, goal *model.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (id, user_id, name, target_amount, current_amount, target_date, color, icon, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		goal.ID,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.Color,
		goal.Icon,
		goal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create savings goal: %w", err)
	}

	return nil
}

// ListGoals returns the user's savings goals newest first.
func (r *Repository) ListGoals(ctx context.Context, userID string) ([]*model.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, color, icon, created_at
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	defer rows.Close()

	var goals []*model.SavingsGoal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating savings goals: %w", err)
	}

	return goals, nil
}

// AddFunds increments a goal's saved amount relative to the stored
// value in a single statement and returns the updated row.
// Returns ErrGoalNotFound when the goal is missing or owned by someone else.
func (r *Repository) AddFunds(ctx context.Context, userID, id string, amount float64) (*model.SavingsGoal, error) {
	query := `
		UPDATE savings_goals
		SET current_amount = current_amount + $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, target_amount, current_amount, target_date, color, icon, created_at
	`

	goal, err := scanGoal(r.pool.QueryRow(ctx, query, id, userID, amount))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("failed to add funds: %w", err)
	}

	return goal, nil
}

// DeleteGoal removes a savings goal, scoped to the owner.
func (r *Repository) DeleteGoal(ctx context.Context, userID, id string) error {
	query := `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}

	return nil
}

// scanGoal scans a single row into a SavingsGoal model.
func scanGoal(row pgx.Row) (*model.SavingsGoal, error) {
	var goal model.SavingsGoal
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.TargetDate,
		&goal.Color,
		&goal.Icon,
		&goal.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
