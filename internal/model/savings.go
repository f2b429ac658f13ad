package model

import "time"

// SavingsGoal tracks progress toward a saving target.
// CurrentAmount is only ever mutated relative to the stored value
// through the add-funds operation.
type SavingsGoal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	TargetDate    *time.Time `json:"target_date"`
	Color         string     `json:"color"`
	Icon          string     `json:"icon"`
	CreatedAt     time.Time  `json:"created_at"`
}
