package model

import "time"

// Category groups expenses for budgeting and charts.
// A nil UserID marks a global category visible to every user;
// user-owned rows are created on demand by the categorization fallback.
type Category struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
}

// IsGlobal reports whether the category is visible to all users.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}
