package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/service"
)

func newExpenseHandler(store *memExpenseStore) *ExpenseHandler {
	svc := service.NewExpenseService(store, nil, nil, nil, discardLogger())
	return NewExpenseHandler(svc, discardLogger())
}

func TestExpenseCreate(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/expenses", `{"amount": 42.5, "description": "lunch"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var expense model.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &expense); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if expense.Amount != 42.5 {
		t.Errorf("amount = %v, want 42.5", expense.Amount)
	}
	if expense.ID == "" {
		t.Error("expected generated id")
	}
}

func TestExpenseCreateInvalidJSON(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/expenses", `{"amount": `))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestExpenseCreateMissingAmount(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/expenses", `{"description": "lunch"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestExpenseDeleteNotFound(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	req := withURLParam(authedRequest(http.MethodDelete, "/api/expenses/missing", ""), "id", "missing")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestExpenseListEmpty(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/expenses", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// Empty list serializes as [], not null.
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if string(resp.Data) != "[]" {
		t.Errorf("data = %s, want []", resp.Data)
	}
}

func TestTrendsRejectsBadDate(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	rec := httptest.NewRecorder()
	h.Trends(rec, authedRequest(http.MethodGet, "/api/expenses/trends?startDate=yesterday", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestTrendsDefaultTimeframe(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	rec := httptest.NewRecorder()
	h.Trends(rec, authedRequest(http.MethodGet, "/api/expenses/trends", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Timeframe string          `json:"timeframe"`
		Data      json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Timeframe != "daily" {
		t.Errorf("timeframe = %q, want daily", resp.Timeframe)
	}
	if string(resp.Data) != "[]" {
		t.Errorf("data = %s, want []", resp.Data)
	}
}

func TestTrendsAcceptsBareDates(t *testing.T) {
	h := newExpenseHandler(newMemExpenseStore())

	rec := httptest.NewRecorder()
	h.Trends(rec, authedRequest(http.MethodGet, "/api/expenses/trends?timeframe=monthly&startDate=2025-01-01&endDate=2025-06-30", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestExpenseUpdate(t *testing.T) {
	store := newMemExpenseStore()
	h := newExpenseHandler(store)

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/expenses", `{"amount": 10, "description": "coffee"}`))
	var created model.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	req := withURLParam(authedRequest(http.MethodPut, "/api/expenses/"+created.ID, `{"amount": 12, "description": "coffee and cake"}`), "id", created.ID)
	rec = httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var updated model.Expense
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if updated.Amount != 12 || updated.Description != "coffee and cake" {
		t.Errorf("unexpected update result: %+v", updated)
	}
}
