package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spendwise/spendwise/internal/model"
)

// ErrExpenseNotFound indicates the expense does not exist or is not
// owned by the caller.
var ErrExpenseNotFound = errors.New("expense not found")

// trendWindowSize caps the rolling trend window when no explicit date
// range is requested.
const trendWindowSize = 30

// TrendFilter selects the bucketing and date range for the spending
// trend aggregation.
type TrendFilter struct {
	Timeframe string // daily | weekly | monthly; anything else buckets daily
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateExpense inserts a new expense.
func (r *Repository) CreateExpense(ctx context.Context, expense *model.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, amount, description, category_id, merchant_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Amount,
		expense.Description,
		expense.CategoryID,
		expense.MerchantName,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// ListExpenses returns the user's expenses newest first, joined with
// the category name and icon when the expense is categorized.
func (r *Repository) ListExpenses(ctx context.Context, userID string) ([]*model.Expense, error) {
	query := `
		SELECT e.id, e.user_id, e.amount, e.description, e.category_id, e.merchant_name, e.created_at,
		       c.name, c.icon
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1
		ORDER BY e.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*model.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// GetExpenseByID retrieves an expense owned by the user.
func (r *Repository) GetExpenseByID(ctx context.Context, userID, id string) (*model.Expense, error) {
	query := `
		SELECT e.id, e.user_id, e.amount, e.description, e.category_id, e.merchant_name, e.created_at,
		       c.name, c.icon
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.id = $1 AND e.user_id = $2
	`

	expense, err := scanExpense(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrExpenseNotFound
		}
		return nil, fmt.Errorf("failed to get expense by ID: %w", err)
	}

	return expense, nil
}

// UpdateExpense updates an expense's mutable fields, scoped to the owner.
func (r *Repository) UpdateExpense(ctx context.Context, expense *model.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $3, description = $4, category_id = $5, merchant_name = $6, created_at = $7
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query,
		expense.ID,
		expense.UserID,
		expense.Amount,
		expense.Description,
		expense.CategoryID,
		expense.MerchantName,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// DeleteExpense removes an expense, scoped to the owner.
func (r *Repository) DeleteExpense(ctx context.Context, userID, id string) error {
	query := `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrExpenseNotFound
	}

	return nil
}

// ExpenseTrends returns the user's spending summed into time buckets.
//
// With both StartDate and EndDate set, buckets cover the inclusive range
// and come back in one ascending pass. Otherwise the query walks
// backwards from the newest bucket (bounded by EndDate when given),
// keeps the latest trendWindowSize buckets, and the result is reversed
// so callers always receive ascending chronological order.
// Empty buckets are omitted; gap filling is the caller's concern.
func (r *Repository) ExpenseTrends(ctx context.Context, userID string, filter TrendFilter) ([]*model.TrendPoint, error) {
	query, args, descending := buildTrendQuery(userID, filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense trends: %w", err)
	}
	defer rows.Close()

	var points []*model.TrendPoint
	for rows.Next() {
		var point model.TrendPoint
		if err := rows.Scan(&point.Period, &point.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan trend point: %w", err)
		}
		points = append(points, &point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trend points: %w", err)
	}

	if descending {
		reverseTrendPoints(points)
	}

	return points, nil
}

// truncUnit maps a timeframe to a DATE_TRUNC field. Unrecognized values
// fall back to daily bucketing rather than erroring.
func truncUnit(timeframe string) string {
	switch timeframe {
	case "weekly":
		return "week"
	case "monthly":
		return "month"
	default:
		return "day"
	}
}

// buildTrendQuery assembles the aggregation SQL for the given filter.
// The returned bool reports whether rows come back newest-first and
// must be reversed after scanning.
func buildTrendQuery(userID string, filter TrendFilter) (string, []any, bool) {
	// The trunc unit comes from a fixed switch, never from user input.
	query := fmt.Sprintf(`
		SELECT DATE_TRUNC('%s', created_at) AS period, SUM(amount) AS total_amount
		FROM expenses
		WHERE user_id = $1`, truncUnit(filter.Timeframe))
	args := []any{userID}
	argIndex := 2

	if filter.StartDate != nil && filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at >= $%d AND created_at <= $%d", argIndex, argIndex+1)
		args = append(args, *filter.StartDate, *filter.EndDate)
		query += " GROUP BY period ORDER BY period ASC"
		return query, args, false
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *filter.EndDate)
		argIndex++
	}

	query += fmt.Sprintf(" GROUP BY period ORDER BY period DESC LIMIT $%d", argIndex)
	args = append(args, trendWindowSize)
	return query, args, true
}

// reverseTrendPoints flips a newest-first result into ascending order.
func reverseTrendPoints(points []*model.TrendPoint) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}

// scanExpense scans a single row into an Expense model.
func scanExpense(row pgx.Row) (*model.Expense, error) {
	var expense model.Expense
	err := row.Scan(
		&expense.ID,
		&expense.UserID,
		&expense.Amount,
		&expense.Description,
		&expense.CategoryID,
		&expense.MerchantName,
		&expense.CreatedAt,
		&expense.CategoryName,
		&expense.CategoryIcon,
	)
	if err != nil {
		return nil, err
	}
	return &expense, nil
}
