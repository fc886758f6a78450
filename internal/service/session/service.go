package session

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/iamasit07/photoshare/internal/domain"
	"github.com/iamasit07/photoshare/pkg/auth"
)

// TokenKey is the well-known slot holding the raw bearer token.
const TokenKey = "token"

// Storage is a persistent key/value slot. Implementations live under
// internal/repository.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is the single source of truth for "is there a usable bearer token,
// and who does it belong to". It never talks to the network.
type Store struct {
	storage Storage
	logger  *zap.Logger
	now     func() time.Time
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger.Named("session") }
}

func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveToken overwrites the slot. The token is not inspected.
func (s *Store) SaveToken(ctx context.Context, token string) error {
	return s.storage.Set(ctx, TokenKey, token)
}

// Token returns the raw stored value. A storage failure reads as unset.
func (s *Store) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		s.logger.Warn("failed to read token slot", zap.Error(err))
		return "", false
	}
	return token, ok
}

// ClearToken removes the slot. Clearing an empty slot is fine.
func (s *Store) ClearToken(ctx context.Context) error {
	return s.storage.Delete(ctx, TokenKey)
}

// IsValid reports whether a token is stored, decodes, and carries an exp
// strictly in the future. Decode problems read as false.
func (s *Store) IsValid(ctx context.Context) bool {
	claims := s.claims(ctx)
	return claims.NotExpired(s.now())
}

// CurrentIdentity decodes the stored token without checking expiry.
// Returns nil when there is no token or it does not decode.
func (s *Store) CurrentIdentity(ctx context.Context) *domain.Identity {
	token, ok := s.Token(ctx)
	if !ok || token == "" {
		return nil
	}
	claims, err := auth.DecodeClaims(token)
	if err != nil {
		s.logger.Debug("stored token does not decode", zap.Error(err))
		return nil
	}

	identity := &domain.Identity{
		ID:       claims.ID,
		Email:    claims.Email,
		FullName: claims.FullName,
		Token:    token,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity
}

// ExpiresAt returns the exp claim of the stored token, if any.
func (s *Store) ExpiresAt(ctx context.Context) (time.Time, bool) {
	claims := s.claims(ctx)
	if claims == nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func (s *Store) claims(ctx context.Context) *auth.Claims {
	token, ok := s.Token(ctx)
	if !ok || token == "" {
		return nil
	}
	claims, err := auth.DecodeClaims(token)
	if err != nil {
		s.logger.Debug("stored token does not decode", zap.Error(err))
		return nil
	}
	return claims
}

// TokenSource exposes the stored session to oauth2 transports. Each call
// re-reads the slot so a login or logout is picked up on the next request.
func (s *Store) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, store: s}
}

type tokenSource struct {
	ctx   context.Context
	store *Store
}

func (ts *tokenSource) Token() (*oauth2.Token, error) {
	if !ts.store.IsValid(ts.ctx) {
		return nil, domain.ErrNoSession
	}
	identity := ts.store.CurrentIdentity(ts.ctx)
	if identity == nil {
		return nil, domain.ErrNoSession
	}
	return &oauth2.Token{
		AccessToken: identity.Token,
		TokenType:   "Bearer",
		Expiry:      identity.ExpiresAt,
	}, nil
}
