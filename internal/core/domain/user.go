package domain

import "time"

// User represents an account holder that owns transactions.
type User struct {
	UserID       int64     `json:"userID"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
