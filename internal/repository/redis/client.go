package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "photoshare:"

// Store keeps client slots in redis so several processes on one machine
// (the CLI and a long-running watcher) share the signed-in session.
type Store struct {
	client *redis.Client
}

// NewStore connects and pings. A failed ping is returned so the caller can
// fall back to another store.
func NewStore(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}

	return &Store{client: client}, nil
}

// NewStoreWithClient wraps an existing client without pinging it.
func NewStoreWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func (r *Store) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores without expiration; an expired token stays until cleared.
func (r *Store) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (r *Store) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, keyPrefix+key).Err()
}

func (r *Store) Close() error {
	return r.client.Close()
}
