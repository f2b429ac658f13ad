package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/service"
)

func newBudgetHandler(store *memBudgetStore) *BudgetHandler {
	return NewBudgetHandler(service.NewBudgetService(store), discardLogger())
}

func TestBudgetUpsertReplacesAmount(t *testing.T) {
	store := newMemBudgetStore()
	h := newBudgetHandler(store)

	rec := httptest.NewRecorder()
	h.Upsert(rec, authedRequest(http.MethodPost, "/api/budgets", `{"category_id": "cat-1", "amount": 500}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("first upsert status = %d: %s", rec.Code, rec.Body.String())
	}
	var first model.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &first); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if first.Period != model.PeriodMonthly {
		t.Errorf("period = %q, want MONTHLY default", first.Period)
	}

	rec = httptest.NewRecorder()
	h.Upsert(rec, authedRequest(http.MethodPost, "/api/budgets", `{"category_id": "cat-1", "amount": 750}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("second upsert status = %d", rec.Code)
	}
	var second model.Budget
	if err := json.Unmarshal(rec.Body.Bytes(), &second); err != nil {
		t.Fatalf("invalid JSON: %v", err)
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

func TestBudgetUpsertInvalidPeriod(t *testing.T) {
	h := newBudgetHandler(newMemBudgetStore())

	rec := httptest.NewRecorder()
	h.Upsert(rec, authedRequest(http.MethodPost, "/api/budgets", `{"category_id": "cat-1", "amount": 500, "period": "HOURLY"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBudgetDeleteNotFound(t *testing.T) {
	h := newBudgetHandler(newMemBudgetStore())

	req := withURLParam(authedRequest(http.MethodDelete, "/api/budgets/missing", ""), "id", "missing")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
