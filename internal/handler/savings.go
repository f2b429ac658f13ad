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

// SavingsHandler handles HTTP requests for savings goal operations.
type SavingsHandler struct {
	svc    *service.SavingsService
	logger *slog.Logger
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(svc *service.SavingsService, logger *slog.Logger) *SavingsHandler {
	return &SavingsHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /api/savings.
func (h *SavingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	goal, err := h.svc.Create(r.Context(), auth.UserIDFromContext(r.Context()), service.CreateGoalInput{
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		Color:        req.Color,
		Icon:         req.Icon,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, goal)
}

// List handles GET /api/savings.
func (h *SavingsHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if goals == nil {
		goals = []*model.SavingsGoal{}
	}

	writeJSON(w, http.StatusOK, dto.GoalListResponse{Data: goals})
}

// AddFunds handles PUT /api/savings/{id}/add. The increment is applied
// to the stored value, never to a client-provided total.
func (h *SavingsHandler) AddFunds(w http.ResponseWriter, r *http.Request) {
	var req dto.AddFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	goal, err := h.svc.AddFunds(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

// Delete handles DELETE /api/savings/{id}.
func (h *SavingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Delete(r.Context(), auth.UserIDFromContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SavingsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		writeError(w, http.StatusBadRequest, "NAME_REQUIRED", "name is required")
	case errors.Is(err, service.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "INVALID_TARGET", "target_amount must be greater than zero")
	case errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, "INVALID_AMOUNT", "amount must be greater than zero")
	case errors.Is(err, repository.ErrGoalNotFound):
		writeError(w, http.StatusNotFound, "GOAL_NOT_FOUND", "savings goal not found")
	default:
		h.logger.Error("savings request failed", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
