package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/handler/dto"
	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/repository"
	"github.com/spendwise/spendwise/internal/service"
)

// ExpenseHandler handles HTTP requests for expense operations.
type ExpenseHandler struct {
	svc    *service.ExpenseService
	logger *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	expense, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), service.CreateExpenseInput{
		Amount:       req.Amount,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		MerchantName: req.MerchantName,
		Date:         req.Date,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// List handles GET /api/expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if expenses == nil {
		expenses = []*model.Expense{}
	}

	writeJSON(w, http.StatusOK, dto.ExpenseListResponse{Data: expenses})
}

// Get handles GET /api/expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	expense, err := h.svc.Get(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

// Update handles PUT /api/expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	expense, err := h.svc.Update(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), service.CreateExpenseInput{
		Amount:       req.Amount,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		MerchantName: req.MerchantName,
		Date:         req.Date,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

// Delete handles DELETE /api/expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Trends handles GET /api/expenses/trends.
//
// Query parameters: timeframe (daily|weekly|monthly, default daily),
// startDate and endDate (RFC 3339 or YYYY-MM-DD). Buckets always come
// back in ascending chronological order.
func (h *ExpenseHandler) Trends(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	timeframe := q.Get("timeframe")
	if timeframe == "" {
		timeframe = "daily"
	}

	filter := repository.TrendFilter{Timeframe: timeframe}

	if raw := q.Get("startDate"); raw != "" {
		start, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_DATE", "startDate must be RFC 3339 or YYYY-MM-DD")
			return
		}
		filter.StartDate = &start
	}
	if raw := q.Get("endDate"); raw != "" {
		end, err := parseDate(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_DATE", "endDate must be RFC 3339 or YYYY-MM-DD")
			return
		}
		filter.EndDate = &end
	}

	points, err := h.svc.Trends(r.Context(), auth.UserIDFromContext(r.Context()), filter)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if points == nil {
		points = []*model.TrendPoint{}
	}

	writeJSON(w, http.StatusOK, dto.TrendsResponse{Timeframe: timeframe, Data: points})
}

func (h *ExpenseHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAmountRequired):
		writeError(w, http.StatusBadRequest, "AMOUNT_REQUIRED", "amount is required")
	case errors.Is(err, repository.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, "EXPENSE_NOT_FOUND", "expense not found")
	default:
		h.logger.Error("expense request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
