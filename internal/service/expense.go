// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/advisor"
	"github.com/spendwise/spendwise/internal/metrics"
	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/repository"
)

// Service errors.
var (
	ErrAmountRequired = errors.New("amount is required")
)

// Categorizer classifies a transaction into a category name.
// Implemented by the advisor client.
type Categorizer interface {
	Categorize(ctx context.Context, merchant string, amount float64) (*advisor.Classification, error)
}

// MerchantCache caches classifier results keyed by merchant text.
// Implemented by the Redis cache.
type MerchantCache interface {
	GetMerchantCategory(ctx context.Context, merchant string) (string, error)
	SetMerchantCategory(ctx context.Context, merchant, category string) error
}

// ExpenseStore is the persistence surface the expense service needs.
// Implemented by the repository.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, expense *model.Expense) error
	GetExpenseByID(ctx context.Context, userID, id string) (*model.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]*model.Expense, error)
	UpdateExpense(ctx context.Context, expense *model.Expense) error
	DeleteExpense(ctx context.Context, userID, id string) error
	ExpenseTrends(ctx context.Context, userID string, filter repository.TrendFilter) ([]*model.TrendPoint, error)
	FindCategoryByName(ctx context.Context, userID, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
}

// ExpenseService handles expense creation and the categorization fallback.
type ExpenseService struct {
	store       ExpenseStore
	cache       MerchantCache
	categorizer Categorizer
	metrics     metrics.Recorder
	logger      *slog.Logger
}

// NewExpenseService creates a new ExpenseService.
// cache and categorizer may be nil; categorization then degrades to
// storing uncategorized expenses.
func NewExpenseService(store ExpenseStore, cache MerchantCache, categorizer Categorizer, recorder metrics.Recorder, logger *slog.Logger) *ExpenseService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ExpenseService{
		store:       store,
		cache:       cache,
		categorizer: categorizer,
		metrics:     recorder,
		logger:      logger,
	}
}

// CreateExpenseInput defines input for creating an expense.
type CreateExpenseInput struct {
	Amount       float64
	Description  string
	CategoryID   *string
	MerchantName string
	Date         *time.Time
}

// Create stores a new expense for the user. When no category is
// supplied it runs the best-effort classification fallback; a failing
// classifier never fails the write.
func (s *ExpenseService) Create(ctx context.Context, userID string, input CreateExpenseInput) (*model.Expense, error) {
	if input.Amount == 0 {
		return nil, ErrAmountRequired
	}

	createdAt := time.Now().UTC()
	if input.Date != nil {
		createdAt = *input.Date
	}

	categoryID := input.CategoryID
	if categoryID == nil {
		categoryID = s.resolveCategory(ctx, userID, input)
	}

	expense := &model.Expense{
		ID:           uuid.New().String(),
		UserID:       userID,
		Amount:       input.Amount,
		Description:  input.Description,
		CategoryID:   categoryID,
		MerchantName: input.MerchantName,
		CreatedAt:    createdAt,
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	s.metrics.IncExpenseCreated()

	// Re-read so the response carries the joined category name/icon.
	saved, err := s.store.GetExpenseByID(ctx, userID, expense.ID)
	if err != nil {
		return expense, nil
	}
	return saved, nil
}

// List returns the user's expenses, newest first, with joined category
// name and icon.
func (s *ExpenseService) List(ctx context.Context, userID string) ([]*model.Expense, error) {
	return s.store.ListExpenses(ctx, userID)
}

// Get returns a single expense owned by the user.
func (s *ExpenseService) Get(ctx context.Context, userID, id string) (*model.Expense, error) {
	return s.store.GetExpenseByID(ctx, userID, id)
}

// Update replaces the mutable fields of an expense. A nil Date keeps
// the stored date. Updates never re-run the classification fallback.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, input CreateExpenseInput) (*model.Expense, error) {
	if input.Amount == 0 {
		return nil, ErrAmountRequired
	}

	existing, err := s.store.GetExpenseByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	createdAt := existing.CreatedAt
	if input.Date != nil {
		createdAt = *input.Date
	}

	updated := &model.Expense{
		ID:           id,
		UserID:       userID,
		Amount:       input.Amount,
		Description:  input.Description,
		CategoryID:   input.CategoryID,
		MerchantName: input.MerchantName,
		CreatedAt:    createdAt,
	}
	if err := s.store.UpdateExpense(ctx, updated); err != nil {
		return nil, err
	}

	saved, err := s.store.GetExpenseByID(ctx, userID, id)
	if err != nil {
		return updated, nil
	}
	return saved, nil
}

// Delete removes an expense owned by the user.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	return s.store.DeleteExpense(ctx, userID, id)
}

// Trends returns the user's spending aggregated into time buckets.
func (s *ExpenseService) Trends(ctx context.Context, userID string, filter repository.TrendFilter) ([]*model.TrendPoint, error) {
	return s.store.ExpenseTrends(ctx, userID, filter)
}

// resolveCategory implements the classification fallback. It returns a
// category id, or nil when no classification could be made. Failures
// are logged and swallowed so the caller's insert always proceeds.
func (s *ExpenseService) resolveCategory(ctx context.Context, userID string, input CreateExpenseInput) *string {
	text := strings.TrimSpace(input.MerchantName)
	if text == "" {
		text = strings.TrimSpace(input.Description)
	}
	if text == "" || s.categorizer == nil {
		return nil
	}

	name := s.cachedCategory(ctx, text)
	if name == "" {
		classification, err := s.categorizer.Categorize(ctx, text, input.Amount)
		if err != nil {
			s.metrics.IncCategorizeCall("failed")
			s.logger.Warn("categorization failed, storing uncategorized",
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			return nil
		}
		s.metrics.IncCategorizeCall("success")
		name = classification.Category

		if s.cache != nil {
			if err := s.cache.SetMerchantCategory(ctx, text, name); err != nil {
				s.logger.Warn("merchant cache write failed", slog.String("error", err.Error()))
			}
		}
	}

	return s.ensureCategory(ctx, userID, name)
}

// cachedCategory checks the merchant cache; empty string means miss.
func (s *ExpenseService) cachedCategory(ctx context.Context, merchant string) string {
	if s.cache == nil {
		return ""
	}
	name, err := s.cache.GetMerchantCategory(ctx, merchant)
	if err != nil {
		s.metrics.IncCategorizeCacheMiss()
		return ""
	}
	s.metrics.IncCategorizeCacheHit()
	return name
}

// ensureCategory resolves a category name to an id visible to the user,
// creating a user-owned row when none exists. Repeated submissions with
// the same merchant resolve to the same category once created.
func (s *ExpenseService) ensureCategory(ctx context.Context, userID, name string) *string {
	existing, err := s.store.FindCategoryByName(ctx, userID, name)
	if err == nil {
		return &existing.ID
	}
	if !errors.Is(err, repository.ErrCategoryNotFound) {
		s.logger.Warn("category lookup failed", slog.String("error", err.Error()))
		return nil
	}

	category := &model.Category{
		ID:        uuid.New().String(),
		UserID:    &userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateCategory(ctx, category); err != nil {
		s.logger.Warn("category create failed", slog.String("error", err.Error()))
		return nil
	}
	s.metrics.IncCategoryCreated()

	return &category.ID
}
