package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/handler/dto"
	"github.com/spendwise/spendwise/internal/model"
)

// CategoryLister is the lookup surface the category handler needs.
// Implemented by the repository.
type CategoryLister interface {
	ListCategories(ctx context.Context, userID string) ([]*model.Category, error)
}

// CategoryHandler handles HTTP requests for category lookups.
type CategoryHandler struct {
	store  CategoryLister
	logger *slog.Logger
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(store CategoryLister, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		store:  store,
		logger: logger,
	}
}

// List handles GET /api/categories. The response contains the global
// defaults plus the caller's own categories, alphabetical by name.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		h.logger.Error("category list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}
	if categories == nil {
		categories = []*model.Category{}
	}

	writeJSON(w, http.StatusOK, dto.CategoryListResponse{Data: categories})
}
