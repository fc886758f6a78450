package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/iamasit07/photoshare/internal/config"
	"github.com/iamasit07/photoshare/internal/repository/filestore"
	"github.com/iamasit07/photoshare/internal/repository/memory"
	"github.com/iamasit07/photoshare/internal/repository/redis"
	"github.com/iamasit07/photoshare/internal/repository/sqlstore"
	"github.com/iamasit07/photoshare/internal/service/session"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStorage picks the token slot backend named by cfg.TokenStore.
// An unreachable redis falls back to the file store.
func OpenStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (session.Storage, io.Closer, error) {
	switch cfg.TokenStore {
	case "memory":
		return memory.NewStore(), nopCloser{}, nil

	case "", "file":
		return filestore.New(cfg.TokenFile, cfg.TokenPassphrase), nopCloser{}, nil

	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := sqlstore.Open(sqlstore.DriverSQLite, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("TOKEN_STORE=postgres requires DATABASE_URL")
		}
		store, err := sqlstore.Open(sqlstore.DriverPostgres, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil

	case "redis":
		store, err := redis.NewStore(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Warn("redis unavailable, using file store", zap.String("addr", cfg.RedisURL), zap.Error(err))
			return filestore.New(cfg.TokenFile, cfg.TokenPassphrase), nopCloser{}, nil
		}
		return store, store, nil
	}
	return nil, nil, fmt.Errorf("unknown TOKEN_STORE %q", cfg.TokenStore)
}
