package domain

import "time"

// Session links a client credential to a user for a limited time.
type Session struct {
	SessionID string
	UserID    int64
	ExpiresAt time.Time
}

// LegacyOwnerID is the owner assigned to every transaction when the application runs
// without accounts (file storage).
const LegacyOwnerID int64 = 0
