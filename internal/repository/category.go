package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spendwise/spendwise/internal/model"
)

// ErrCategoryNotFound indicates no visible category matched.
var ErrCategoryNotFound = errors.New("category not found")

// ListCategories returns global categories plus the user's own,
// ordered alphabetically by name.
func (r *Repository) ListCategories(ctx context.Context, userID string) ([]*model.Category, error) {
	query := `
		SELECT id, user_id, name, icon, created_at
		FROM categories
		WHERE user_id IS NULL OR user_id = $1
		ORDER BY name ASC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetCategoryByID retrieves a category visible to the user (global or owned).
func (r *Repository) GetCategoryByID(ctx context.Context, userID, id string) (*model.Category, error) {
	query := `
		SELECT id, user_id, name, icon, created_at
		FROM categories
		WHERE id = $1 AND (user_id IS NULL OR user_id = $2)
	`

	category, err := scanCategory(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by ID: %w", err)
	}

	return category, nil
}

// FindCategoryByName looks up a category by name among those visible to
// the user. Matching is case-insensitive so classifier output like
// "food" resolves to an existing "Food" row.
func (r *Repository) FindCategoryByName(ctx context.Context, userID, name string) (*model.Category, error) {
	query := `
		SELECT id, user_id, name, icon, created_at
		FROM categories
		WHERE LOWER(name) = LOWER($1) AND (user_id IS NULL OR user_id = $2)
		ORDER BY user_id NULLS LAST
		LIMIT 1
	`

	category, err := scanCategory(r.pool.QueryRow(ctx, query, name, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by name: %w", err)
	}

	return category, nil
}

// CreateCategory inserts a new user-owned category.
func (r *Repository) CreateCategory(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, icon, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.UserID,
		category.Name,
		category.Icon,
		category.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// scanCategory scans a single row into a Category model.
func scanCategory(row pgx.Row) (*model.Category, error) {
	var category model.Category
	err := row.Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Icon,
		&category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
