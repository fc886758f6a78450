package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/internal/repository/memory"
	"github.com/iamasit07/photoshare/internal/testutil"
)

var now = time.Unix(1_800_000_000, 0)

func newTestStore() *Store {
	return NewStore(memory.NewStore(), WithClock(func() time.Time { return now }))
}

func TestSaveAndReadToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, ok := s.Token(ctx)
	assert.False(t, ok)

	require.NoError(t, s.SaveToken(ctx, "not-even-a-jwt"))
	token, ok := s.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, "not-even-a-jwt", token, "tokens are stored as-is")

	require.NoError(t, s.SaveToken(ctx, "second"))
	token, _ = s.Token(ctx)
	assert.Equal(t, "second", token)

	require.NoError(t, s.ClearToken(ctx))
	_, ok = s.Token(ctx)
	assert.False(t, ok)
	assert.NoError(t, s.ClearToken(ctx), "clearing twice is fine")
}

func TestIsValid(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"expires in one second", testutil.TokenExpiringAt(t, now.Add(time.Second)), true},
		{"expired one second ago", testutil.TokenExpiringAt(t, now.Add(-time.Second)), false},
		{"expires exactly now", testutil.TokenExpiringAt(t, now), false},
		{"two segments", "aaa.bbb", false},
		{"four segments", "a.b.c.d", false},
		{"payload not json", testutil.RawToken("not json"), false},
		{"no exp", testutil.RawToken(`{"email":"a@b.c","fullName":"A"}`), false},
		{"null payload", testutil.RawToken("null"), false},
		{"array payload", testutil.RawToken(`[1,2]`), false},
		{"string id", testutil.RawToken(`{"id":"7","email":"a@b.c","fullName":"A","exp":1900000000,"iat":1}`), true},
		{"numeric sub", testutil.RawToken(`{"sub":7,"email":"a@b.c","exp":1900000000}`), true},
		{"numeric jti", testutil.RawToken(`{"jti":12,"exp":1900000000}`), true},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore()
			require.NoError(t, s.SaveToken(ctx, tt.token))
			assert.Equal(t, tt.want, s.IsValid(ctx))
		})
	}

	assert.False(t, newTestStore().IsValid(ctx), "no token stored")
}

func TestIsValidDoesNotRemoveToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	expired := testutil.TokenExpiringAt(t, now.Add(-time.Hour))
	require.NoError(t, s.SaveToken(ctx, expired))

	assert.False(t, s.IsValid(ctx))
	token, ok := s.Token(ctx)
	assert.True(t, ok)
	assert.Equal(t, expired, token)
}

func TestCurrentIdentity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	assert.Nil(t, s.CurrentIdentity(ctx))

	exp := now.Add(-time.Hour)
	require.NoError(t, s.SaveToken(ctx, testutil.TokenExpiringAt(t, exp)))

	identity := s.CurrentIdentity(ctx)
	require.NotNil(t, identity, "expiry is not checked")
	assert.Equal(t, int64(7), identity.ID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "Ada Lovelace", identity.FullName)
	assert.True(t, identity.ExpiresAt.Equal(exp))

	require.NoError(t, s.SaveToken(ctx, testutil.RawToken(`{"email":"b@c.d","fullName":"B"}`)))
	identity = s.CurrentIdentity(ctx)
	require.NotNil(t, identity)
	assert.Zero(t, identity.ID)
	assert.Equal(t, "B", identity.FullName)

	require.NoError(t, s.SaveToken(ctx, testutil.RawToken(`{"id":"7","sub":7,"email":"c@d.e","fullName":42,"exp":1900000000}`)))
	identity = s.CurrentIdentity(ctx)
	require.NotNil(t, identity, "mistyped claims read as absent")
	assert.Zero(t, identity.ID)
	assert.Equal(t, "c@d.e", identity.Email)
	assert.Empty(t, identity.FullName)
	assert.True(t, identity.ExpiresAt.Equal(time.Unix(1_900_000_000, 0)))

	require.NoError(t, s.SaveToken(ctx, testutil.RawToken("null")))
	assert.Nil(t, s.CurrentIdentity(ctx))

	require.NoError(t, s.SaveToken(ctx, "garbage"))
	assert.Nil(t, s.CurrentIdentity(ctx))
}

func TestExpiresAt(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()

	_, ok := s.ExpiresAt(ctx)
	assert.False(t, ok)

	exp := now.Add(time.Minute)
	require.NoError(t, s.SaveToken(ctx, testutil.TokenExpiringAt(t, exp)))
	got, ok := s.ExpiresAt(ctx)
	assert.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestTokenSource(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	ts := s.TokenSource(ctx)

	_, err := ts.Token()
	assert.ErrorIs(t, err, domain.ErrNoSession)

	valid := testutil.TokenExpiringAt(t, now.Add(time.Hour))
	require.NoError(t, s.SaveToken(ctx, valid))
	tok, err := ts.Token()
	require.NoError(t, err)
	assert.Equal(t, valid, tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)

	require.NoError(t, s.SaveToken(ctx, testutil.TokenExpiringAt(t, now.Add(-time.Hour))))
	_, err = ts.Token()
	assert.ErrorIs(t, err, domain.ErrNoSession, "an expired token is never sent")

	require.NoError(t, s.ClearToken(ctx))
	_, err = ts.Token()
	assert.ErrorIs(t, err, domain.ErrNoSession, "logout is picked up")
}

type brokenStorage struct{}

func (brokenStorage) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (brokenStorage) Set(context.Context, string, string) error { return errors.New("disk on fire") }
func (brokenStorage) Delete(context.Context, string) error      { return errors.New("disk on fire") }

func TestStorageFailureReadsAsNoSession(t *testing.T) {
	ctx := context.Background()
	s := NewStore(brokenStorage{})

	_, ok := s.Token(ctx)
	assert.False(t, ok)
	assert.False(t, s.IsValid(ctx))
	assert.Nil(t, s.CurrentIdentity(ctx))
	assert.Error(t, s.SaveToken(ctx, "x"))
}
