// Package testutil builds bearer tokens for tests.
package testutil

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const header = `{"alg":"HS256","typ":"JWT"}`

// Token signs claims with a throwaway secret. The client never checks it.
func Token(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// TokenExpiringAt is a token for a typical user with the given exp.
func TokenExpiringAt(t testing.TB, exp time.Time) string {
	return Token(t, jwt.MapClaims{
		"id":       float64(7),
		"email":    "ada@example.com",
		"fullName": "Ada Lovelace",
		"iat":      exp.Add(-time.Hour).Unix(),
		"exp":      exp.Unix(),
	})
}

// RawToken joins an arbitrary payload into three segments.
func RawToken(payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(payload)) + ".c2ln"
}
