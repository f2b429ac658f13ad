package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/repository"
)

// fakeBudgetStore upserts into a map keyed by (user, category, period).
type fakeBudgetStore struct {
	budgets map[string]*model.Budget
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{budgets: make(map[string]*model.Budget)}
}

func (f *fakeBudgetStore) key(b *model.Budget) string {
	return b.UserID + "/" + b.CategoryID + "/" + b.Period
}

func (f *fakeBudgetStore) UpsertBudget(_ context.Context, budget *model.Budget) (*model.Budget, error) {
	key := f.key(budget)
	if existing, ok := f.budgets[key]; ok {
		existing.Amount = budget.Amount
		existing.UpdatedAt = budget.UpdatedAt
		return existing, nil
	}
	f.budgets[key] = budget
	return budget, nil
}

func (f *fakeBudgetStore) ListBudgets(_ context.Context, userID string) ([]*model.Budget, error) {
	var out []*model.Budget
	for _, b := range f.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetStore) DeleteBudget(_ context.Context, userID, id string) error {
	for key, b := range f.budgets {
		if b.UserID == userID && b.ID == id {
			delete(f.budgets, key)
			return nil
		}
	}
	return repository.ErrBudgetNotFound
}

func TestBudgetUpsert_DefaultsToMonthly(t *testing.T) {
	svc := NewBudgetService(newFakeBudgetStore())

	budget, err := svc.Upsert(context.Background(), "user-1", UpsertBudgetInput{
		CategoryID: "cat-1",
		Amount:     500,
	})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if budget.Period != model.PeriodMonthly {
		t.Errorf("period = %q, want MONTHLY", budget.Period)
	}
}

func TestBudgetUpsert_SecondWriteKeepsSingleRow(t *testing.T) {
	store := newFakeBudgetStore()
	svc := NewBudgetService(store)

	first, err := svc.Upsert(context.Background(), "user-1", UpsertBudgetInput{CategoryID: "cat-1", Amount: 500})
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	second, err := svc.Upsert(context.Background(), "user-1", UpsertBudgetInput{CategoryID: "cat-1", Amount: 750})
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("upsert created a second row: %s != %s", second.ID, first.ID)
	}
	if second.Amount != 750 {
		t.Errorf("amount = %v, want 750", second.Amount)
	}
	if len(store.budgets) != 1 {
		t.Errorf("stored rows = %d, want 1", len(store.budgets))
	}
}

func TestBudgetUpsert_Validation(t *testing.T) {
	svc := NewBudgetService(newFakeBudgetStore())

	tests := []struct {
		name    string
		input   UpsertBudgetInput
		wantErr error
	}{
		{"missing category", UpsertBudgetInput{Amount: 100}, ErrCategoryRequired},
		{"zero amount", UpsertBudgetInput{CategoryID: "cat-1"}, ErrInvalidAmount},
		{"negative amount", UpsertBudgetInput{CategoryID: "cat-1", Amount: -5}, ErrInvalidAmount},
		{"bad period", UpsertBudgetInput{CategoryID: "cat-1", Amount: 100, Period: "DAILY"}, ErrInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), "user-1", tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
