// Package model defines domain entities for the application.
package model

import "time"

// User represents a registered account.
// PasswordHash is never serialized to JSON.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthContext carries the authenticated caller through a request.
// Populated by the auth middleware from verified token claims.
type AuthContext struct {
	UserID string
	Email  string
}
