package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/photoshare/internal/testutil"
)

func TestDecodeClaims(t *testing.T) {
	exp := time.Unix(1_900_000_000, 0)
	claims, err := DecodeClaims(testutil.TokenExpiringAt(t, exp))
	require.NoError(t, err)

	assert.Equal(t, int64(7), claims.ID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.FullName)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.Equal(exp))
}

func TestDecodeClaimsMissingID(t *testing.T) {
	claims, err := DecodeClaims(testutil.RawToken(`{"email":"a@b.c","fullName":"A","exp":1900000000}`))
	require.NoError(t, err)
	assert.Zero(t, claims.ID)
}

func TestDecodeClaimsRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"two segments", "aaa.bbb"},
		{"four segments", "a.b.c.d"},
		{"bad base64", "aaa.!!!.ccc"},
		{"not json", testutil.RawToken("hello")},
		{"exp not a number", testutil.RawToken(`{"exp":"soon"}`)},
		{"array payload", testutil.RawToken(`["exp"]`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeClaims(tt.token)
			assert.Error(t, err)
		})
	}

	_, err := DecodeClaims("a.b.c.d")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = DecodeClaims(testutil.RawToken("null"))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestDecodeClaimsToleratesMistypedClaims(t *testing.T) {
	claims, err := DecodeClaims(testutil.RawToken(`{"id":"7","sub":7,"jti":3,"email":"a@b.c","fullName":["A"],"exp":1900000000}`))
	require.NoError(t, err)
	assert.Zero(t, claims.ID)
	assert.Equal(t, "a@b.c", claims.Email)
	assert.Empty(t, claims.FullName)
	assert.True(t, claims.NotExpired(time.Unix(1_800_000_000, 0)))
}

func TestNotExpired(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)

	future, err := DecodeClaims(testutil.RawToken(`{"exp":1800000001}`))
	require.NoError(t, err)
	assert.True(t, future.NotExpired(now))

	exact, err := DecodeClaims(testutil.RawToken(`{"exp":1800000000}`))
	require.NoError(t, err)
	assert.False(t, exact.NotExpired(now), "exp equal to now is expired")

	past, err := DecodeClaims(testutil.RawToken(`{"exp":1799999999}`))
	require.NoError(t, err)
	assert.False(t, past.NotExpired(now))

	noExp, err := DecodeClaims(testutil.RawToken(`{"email":"a@b.c"}`))
	require.NoError(t, err)
	assert.False(t, noExp.NotExpired(now))

	var missing *Claims
	assert.False(t, missing.NotExpired(now))
}
