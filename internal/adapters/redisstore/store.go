package redisstore

// Package redisstore provides a Redis-backed KVStore for deployments where
// client state is shared between processes (kiosk fleets, server-side
// rendering hosts) rather than held in a local file.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecomsuite/storefront-client/internal/ports"
)

// Store is a Redis-based KVStore.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides the default key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL expires stored values after d. Zero means no expiry.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// New creates a Redis-backed KVStore.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "storefront:",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ ports.KVStore = (*Store)(nil)
