package model

import "time"

// Insight stores the last AI spending audit for a user so the dashboard
// can fall back to it when the advisor service is unreachable.
type Insight struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Items       []string  `json:"items"`
	GeneratedAt time.Time `json:"generated_at"`
}
