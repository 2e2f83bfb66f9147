package model

import "time"

// User represents an account. Every item belongs to exactly one user,
// and deleting a user removes all of their items.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
