package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/repository"
)

// fakeInsightStore is an in-memory InsightStore.
type fakeInsightStore struct {
	expenses []*model.Expense
	insights map[string]*model.Insight
}

func newFakeInsightStore() *fakeInsightStore {
	return &fakeInsightStore{insights: make(map[string]*model.Insight)}
}

func (f *fakeInsightStore) ListExpenses(_ context.Context, _ string) ([]*model.Expense, error) {
	return f.expenses, nil
}

func (f *fakeInsightStore) UpsertInsight(_ context.Context, insight *model.Insight) error {
	f.insights[insight.UserID] = insight
	return nil
}

func (f *fakeInsightStore) GetInsight(_ context.Context, userID string) (*model.Insight, error) {
	insight, ok := f.insights[userID]
	if !ok {
		return nil, repository.ErrInsightNotFound
	}
	return insight, nil
}

// fakeAuditor returns fixed insights or an error.
type fakeAuditor struct {
	insights []string
	reply    string
	err      error
}

func (f *fakeAuditor) Audit(_ context.Context, _ []*model.Expense) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.insights, nil
}

func (f *fakeAuditor) Chat(_ context.Context, _ string, _ []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestAudit_StoresAndReturnsInsights(t *testing.T) {
	store := newFakeInsightStore()
	auditor := &fakeAuditor{insights: []string{"Dining spend up 20%"}}
	svc := NewAdviceService(store, auditor, discardLogger())

	insight, err := svc.Audit(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}

	if len(insight.Items) != 1 || insight.Items[0] != "Dining spend up 20%" {
		t.Errorf("unexpected insight items: %v", insight.Items)
	}
	if store.insights["user-1"] == nil {
		t.Error("expected the insight to be stored")
	}
}

func TestAudit_FallsBackToCachedInsight(t *testing.T) {
	store := newFakeInsightStore()
	store.insights["user-1"] = &model.Insight{
		UserID:      "user-1",
		Items:       []string{"older insight"},
		GeneratedAt: time.Now().Add(-time.Hour),
	}
	auditor := &fakeAuditor{err: errors.New("service down")}
	svc := NewAdviceService(store, auditor, discardLogger())

	insight, err := svc.Audit(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected cached fallback, got error %v", err)
	}
	if insight.Items[0] != "older insight" {
		t.Errorf("expected cached insight, got %v", insight.Items)
	}
}

func TestAudit_UnavailableWithoutCache(t *testing.T) {
	store := newFakeInsightStore()
	auditor := &fakeAuditor{err: errors.New("service down")}
	svc := NewAdviceService(store, auditor, discardLogger())

	if _, err := svc.Audit(context.Background(), "user-1"); !errors.Is(err, ErrAdvisorUnavailable) {
		t.Errorf("expected ErrAdvisorUnavailable, got %v", err)
	}
}

func TestChat(t *testing.T) {
	svc := NewAdviceService(newFakeInsightStore(), &fakeAuditor{reply: "Save 10% monthly."}, discardLogger())

	reply, err := svc.Chat(context.Background(), "help", nil)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "Save 10% monthly." {
		t.Errorf("unexpected reply %q", reply)
	}

	down := NewAdviceService(newFakeInsightStore(), &fakeAuditor{err: errors.New("down")}, discardLogger())
	if _, err := down.Chat(context.Background(), "help", nil); !errors.Is(err, ErrAdvisorUnavailable) {
		t.Errorf("expected ErrAdvisorUnavailable, got %v", err)
	}
}
