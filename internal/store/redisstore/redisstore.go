package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Makepad-fr/shoplist/internal/store"
)

// Options configure the Redis connection.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string // prepended to every key, e.g. "alice:"
}

// Store keeps values as plain Redis strings with no expiry.
type Store struct {
	client *redis.Client
	prefix string
}

var _ store.Store = (*Store)(nil)

// New connects and pings the server.
func New(ctx context.Context, opt Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opt.Addr, err)
	}
	return &Store{client: client, prefix: opt.KeyPrefix}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
