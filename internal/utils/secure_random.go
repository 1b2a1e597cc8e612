package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// SessionIDBytes is the entropy of a session id before encoding.
const SessionIDBytes = 32

// NewSessionID returns a random, URL-safe session identifier. Only its hash
// (see HashToken) is ever persisted.
func NewSessionID() (string, error) {
	return randomToken(SessionIDBytes)
}

func randomToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", n)
	}
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
