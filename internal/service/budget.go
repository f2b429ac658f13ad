package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/model"
)

// Budget validation errors.
var (
	ErrCategoryRequired = errors.New("category_id is required")
	ErrInvalidPeriod    = errors.New("period must be WEEKLY, MONTHLY or YEARLY")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
)

// BudgetStore is the persistence surface the budget service needs.
// Implemented by the repository.
type BudgetStore interface {
	UpsertBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]*model.Budget, error)
	DeleteBudget(ctx context.Context, userID, id string) error
}

// BudgetService handles per-category budget limits.
type BudgetService struct {
	store BudgetStore
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store BudgetStore) *BudgetService {
	return &BudgetService{store: store}
}

// UpsertBudgetInput defines input for writing a budget.
type UpsertBudgetInput struct {
	CategoryID string
	Amount     float64
	Period     string
}

// Upsert writes the budget for (user, category, period), replacing the
// amount when a row already exists. Period defaults to MONTHLY.
func (s *BudgetService) Upsert(ctx context.Context, userID string, input UpsertBudgetInput) (*model.Budget, error) {
	if input.CategoryID == "" {
		return nil, ErrCategoryRequired
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	period := input.Period
	if period == "" {
		period = model.PeriodMonthly
	}
	if !model.ValidPeriod(period) {
		return nil, ErrInvalidPeriod
	}

	return s.store.UpsertBudget(ctx, &model.Budget{
		ID:         uuid.New().String(),
		UserID:     userID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Period:     period,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	})
}

// List returns the user's budgets with joined category name and icon.
func (s *BudgetService) List(ctx context.Context, userID string) ([]*model.Budget, error) {
	return s.store.ListBudgets(ctx, userID)
}

// Delete removes a budget owned by the user.
func (s *BudgetService) Delete(ctx context.Context, userID, id string) error {
	return s.store.DeleteBudget(ctx, userID, id)
}
