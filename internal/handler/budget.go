package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/handler/dto"
	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/repository"
	"github.com/spendwise/spendwise/internal/service"
)

// BudgetHandler handles HTTP requests for budget operations.
type BudgetHandler struct {
	svc    *service.BudgetService
	logger *slog.Logger
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(svc *service.BudgetService, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{
		svc:    svc,
		logger: logger,
	}
}

// Upsert handles POST /api/budgets. Writing a budget for a
// (category, period) pair that already has one replaces the amount.
func (h *BudgetHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req dto.UpsertBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	budget, err := h.svc.Upsert(r.Context(), auth.UserIDFromContext(r.Context()), service.UpsertBudgetInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, budget)
}

// List handles GET /api/budgets.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if budgets == nil {
		budgets = []*model.Budget{}
	}

	writeJSON(w, http.StatusOK, dto.BudgetListResponse{Data: budgets})
}

// Delete handles DELETE /api/budgets/{id}.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *BudgetHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryRequired):
		writeError(w, http.StatusBadRequest, "CATEGORY_REQUIRED", "category_id is required")
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be greater than zero")
	case errors.Is(err, service.ErrInvalidPeriod):
		writeError(w, http.StatusBadRequest, "INVALID_PERIOD", "period must be WEEKLY, MONTHLY or YEARLY")
	case errors.Is(err, repository.ErrBudgetNotFound):
		writeError(w, http.StatusNotFound, "BUDGET_NOT_FOUND", "budget not found")
	default:
		h.logger.Error("budget request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
