package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashToken returns the hex SHA256 digest of a token, so that session stores never
// hold the raw identifier a client presents.
func HashToken(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}
