package dto

import "time"

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MessageResponse carries a human readable outcome for JSON callers of form endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
