package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/model"
)

// Savings goal defaults used when the client sends none.
const (
	defaultGoalColor = "#10B981"
	defaultGoalIcon  = "🎯"
)

// Savings validation errors.
var (
	ErrNameRequired  = errors.New("name is required")
	ErrInvalidTarget = errors.New("target_amount must be greater than zero")
)

// SavingsStore is the persistence surface the savings service needs.
// Implemented by the repository.
type SavingsStore interface {
	CreateGoal(ctx context.Context, goal *model.SavingsGoal) error
	ListGoals(ctx context.Context, userID string) ([]*model.SavingsGoal, error)
	AddFunds(ctx context.Context, userID, id string, amount float64) (*model.SavingsGoal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
}

// SavingsService handles savings goals and fund contributions.
type SavingsService struct {
	store SavingsStore
}

// NewSavingsService creates a new SavingsService.
func NewSavingsService(store SavingsStore) *SavingsService {
	return &SavingsService{store: store}
}

// CreateGoalInput defines input for creating a savings goal.
type CreateGoalInput struct {
	Name         string
	TargetAmount float64
	TargetDate   *time.Time
	Color        string
	Icon         string
}

// Create stores a new savings goal with zero progress.
func (s *SavingsService) Create(ctx context.Context, userID string, input CreateGoalInput) (*model.SavingsGoal, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.TargetAmount <= 0 {
		return nil, ErrInvalidTarget
	}

	color := input.Color
	if color == "" {
		color = defaultGoalColor
	}
	icon := input.Icon
	if icon == "" {
		icon = defaultGoalIcon
	}

	goal := &model.SavingsGoal{
		ID:            uuid.New().String(),
		UserID:        userID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: 0,
		TargetDate:    input.TargetDate,
		Color:         color,
		Icon:          icon,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// List returns the user's goals, newest first.
func (s *SavingsService) List(ctx context.Context, userID string) ([]*model.SavingsGoal, error) {
	return s.store.ListGoals(ctx, userID)
}

// AddFunds increments a goal's progress relative to its stored value
// and returns the updated row.
func (s *SavingsService) AddFunds(ctx context.Context, userID, id string, amount float64) (*model.SavingsGoal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.store.AddFunds(ctx, userID, id, amount)
}

// Delete removes a goal owned by the user.
func (s *SavingsService) Delete(ctx context.Context, userID, id string) error {
	return s.store.DeleteGoal(ctx, userID, id)
}
