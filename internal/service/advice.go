package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/model"
	"github.com/spendwise/spendwise/internal/repository"
)

// ErrAdvisorUnavailable indicates the AI service failed and no cached
// result exists to fall back to.
var ErrAdvisorUnavailable = errors.New("advisor service unavailable")

// Auditor produces spending insights and chat replies.
// Implemented by the advisor client.
type Auditor interface {
	Audit(ctx context.Context, expenses []*model.Expense) ([]string, error)
	Chat(ctx context.Context, message string, history []string) (string, error)
}

// InsightStore is the persistence surface the advice service needs.
type InsightStore interface {
	ListExpenses(ctx context.Context, userID string) ([]*model.Expense, error)
	UpsertInsight(ctx context.Context, insight *model.Insight) error
	GetInsight(ctx context.Context, userID string) (*model.Insight, error)
}

// AdviceService proxies the AI audit and chat endpoints, caching the
// last audit so the dashboard degrades gracefully when the collaborator
// is down.
type AdviceService struct {
	store   InsightStore
	auditor Auditor
	logger  *slog.Logger
}

// NewAdviceService creates a new AdviceService.
func NewAdviceService(store InsightStore, auditor Auditor, logger *slog.Logger) *AdviceService {
	return &AdviceService{
		store:   store,
		auditor: auditor,
		logger:  logger,
	}
}

// Audit runs an AI audit over the user's expenses, stores the result
// and returns it. When the collaborator fails, the previously stored
// result is returned instead; ErrAdvisorUnavailable when there is none.
func (s *AdviceService) Audit(ctx context.Context, userID string) (*model.Insight, error) {
	expenses, err := s.store.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.auditor.Audit(ctx, expenses)
	if err != nil {
		s.logger.Warn("advisor audit failed, trying cached insight",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)

		cached, cacheErr := s.store.GetInsight(ctx, userID)
		if cacheErr != nil {
			if errors.Is(cacheErr, repository.ErrInsightNotFound) {
				return nil, ErrAdvisorUnavailable
			}
			return nil, cacheErr
		}
		return cached, nil
	}

	insight := &model.Insight{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       items,
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.store.UpsertInsight(ctx, insight); err != nil {
		// The fresh result is still worth returning.
		s.logger.Warn("insight cache write failed", slog.String("error", err.Error()))
	}

	return insight, nil
}

// Chat forwards a chat message to the advisor.
func (s *AdviceService) Chat(ctx context.Context, message string, history []string) (string, error) {
	reply, err := s.auditor.Chat(ctx, message, history)
	if err != nil {
		return "", ErrAdvisorUnavailable
	}
	return reply, nil
}
