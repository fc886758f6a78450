package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken = errors.New("token must have exactly three segments")
	ErrNotObject      = errors.New("token payload is not a JSON object")
)

// Claims is the payload the photo backend puts in its bearer tokens.
// The id claim is optional and decodes to 0 when absent.
type Claims struct {
	ID       int64  `json:"id,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// segmentParser is only used for its base64url segment decoding.
var segmentParser = jwt.NewParser()

// DecodeClaims reads the payload segment of a bearer token.
//
// Read claims, never trust claims: the signature is NOT checked here. The
// client does not hold the signing secret and must not; the backend verifies
// the token on every authenticated call. Use the result for display and
// expiry gating only.
func DecodeClaims(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var raw jwt.MapClaims
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("token payload is not valid JSON: %w", err)
	}
	if raw == nil {
		return nil, ErrNotObject
	}

	exp, err := raw.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("invalid exp claim: %w", err)
	}

	// identity claims of the wrong type read as absent
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}
	claims.Email, _ = raw["email"].(string)
	claims.FullName, _ = raw["fullName"].(string)
	if id, ok := raw["id"].(float64); ok {
		claims.ID = int64(id)
	}
	return claims, nil
}

// NotExpired reports whether the exp claim is present and strictly after now.
func (c *Claims) NotExpired(now time.Time) bool {
	if c == nil || c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Time.After(now)
}
