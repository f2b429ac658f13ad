// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/spendwise/spendwise/internal/model"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// RegisterRequest represents the request body for account registration.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the user and a signed bearer token.
type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// CreateExpenseRequest represents the request body for creating or
// updating an expense. Date falls back to the server clock when omitted.
type CreateExpenseRequest struct {
	Amount       float64    `json:"amount"`
	Description  string     `json:"description"`
	CategoryID   *string    `json:"category_id,omitempty"`
	MerchantName string     `json:"merchant_name,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
}

// ExpenseListResponse wraps the caller's expenses.
type ExpenseListResponse struct {
	Data []*model.Expense `json:"data"`
}

// TrendsResponse wraps the spending-trend buckets, always in ascending
// chronological order.
type TrendsResponse struct {
	Timeframe string              `json:"timeframe"`
	Data      []*model.TrendPoint `json:"data"`
}

// UpsertBudgetRequest represents the request body for writing a budget.
// Period defaults to MONTHLY.
type UpsertBudgetRequest struct {
	CategoryID string  `json:"category_id"`
	Amount     float64 `json:"amount"`
	Period     string  `json:"period,omitempty"`
}

// BudgetListResponse wraps the caller's budgets.
type BudgetListResponse struct {
	Data []*model.Budget `json:"data"`
}

// CategoryListResponse wraps the categories visible to the caller.
type CategoryListResponse struct {
	Data []*model.Category `json:"data"`
}

// CreateGoalRequest represents the request body for creating a
// savings goal.
type CreateGoalRequest struct {
	Name         string     `json:"name"`
	TargetAmount float64    `json:"target_amount"`
	TargetDate   *time.Time `json:"target_date,omitempty"`
	Color        string     `json:"color,omitempty"`
	Icon         string     `json:"icon,omitempty"`
}

// AddFundsRequest represents the request body for adding funds to a
// savings goal.
type AddFundsRequest struct {
	Amount float64 `json:"amount"`
}

// GoalListResponse wraps the caller's savings goals.
type GoalListResponse struct {
	Data []*model.SavingsGoal `json:"data"`
}

// AuditResponse carries the stored spending audit.
type AuditResponse struct {
	Insights    []string  `json:"insights"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ChatRequest represents the request body for the advice chat proxy.
type ChatRequest struct {
	Message string   `json:"message"`
	Context []string `json:"context,omitempty"`
}

// ChatResponse carries the advisor's reply.
type ChatResponse struct {
	Response string `json:"response"`
}
