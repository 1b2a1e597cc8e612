package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPasswordHash("s3cret", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewSessionID(t *testing.T) {
	a, err := NewSessionID()
	require.NoError(t, err)
	b, err := NewSessionID()
	require.NoError(t, err)
	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)

	_, err = randomToken(0)
	assert.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "sess-1", "secret", time.Hour, "pft")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "pft", claims.Issuer)

	userID, sessionID, err := SessionClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "sess-1", sessionID)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	token, err := GenerateJWT(1, "s", "secret", time.Hour, "pft")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateJWT(1, "s", "secret", -time.Minute, "pft")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestSessionClaims_Invalid(t *testing.T) {
	_, _, err := SessionClaims(&jwt.RegisteredClaims{Subject: "abc", ID: "x"})
	assert.Error(t, err)

	_, _, err = SessionClaims(&jwt.RegisteredClaims{Subject: "1"})
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}
