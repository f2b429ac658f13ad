package model

import "time"

// Expense is a single transaction owned by one user.
// CategoryID is nil when the expense is uncategorized.
type Expense struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Amount       float64   `json:"amount"`
	Description  string    `json:"description"`
	CategoryID   *string   `json:"category_id"`
	MerchantName string    `json:"merchant_name"`
	CreatedAt    time.Time `json:"created_at"`

	// Joined from categories when listing; empty otherwise.
	CategoryName *string `json:"category_name,omitempty"`
	CategoryIcon *string `json:"category_icon,omitempty"`
}

// TrendPoint is one time bucket of the spending trend aggregation.
type TrendPoint struct {
	Period      time.Time `json:"period"`
	TotalAmount float64   `json:"total_amount"`
}
