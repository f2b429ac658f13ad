package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/handler/dto"
	"github.com/spendwise/spendwise/internal/service"
)

// AdviceHandler handles HTTP requests for the AI advice proxy.
type AdviceHandler struct {
	svc    *service.AdviceService
	logger *slog.Logger
}

// NewAdviceHandler creates a new AdviceHandler.
func NewAdviceHandler(svc *service.AdviceService, logger *slog.Logger) *AdviceHandler {
	return &AdviceHandler{
		svc:    svc,
		logger: logger,
	}
}

// Audit handles POST /api/advice/audit. When the advisor is down the
// previously stored audit is served instead; 502 only when there is
// nothing cached.
func (h *AdviceHandler) Audit(w http.ResponseWriter, r *http.Request) {
	insight, err := h.svc.Audit(r.Context(), auth.UserIDFromContext(r.Context()))
	if err != nil {
		if errors.Is(err, service.ErrAdvisorUnavailable) {
			writeError(w, http.StatusBadGateway, "ADVISOR_UNAVAILABLE", "advisor service unavailable")
			return
		}
		h.logger.Error("audit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditResponse{
		Insights:    insight.Items,
		GeneratedAt: insight.GeneratedAt,
	})
}

// Chat handles POST /api/advice/chat.
func (h *AdviceHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "MESSAGE_REQUIRED", "message is required")
		return
	}

	reply, err := h.svc.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		if errors.Is(err, service.ErrAdvisorUnavailable) {
			writeError(w, http.StatusBadGateway, "ADVISOR_UNAVAILABLE", "advisor service unavailable")
			return
		}
		h.logger.Error("chat failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, dto.ChatResponse{Response: reply})
}
