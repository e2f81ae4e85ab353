// Package redis stores JSON encoded records in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "mbrewrite"

// Store keeps each record under <prefix>:<key>.
type Store struct {
	client goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

type Option func(s *Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithTTL expires records after ttl; zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

func New(client goredis.UniversalClient, opts ...Option) *Store {
	ret := &Store{client: client, prefix: defaultPrefix}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Open connects to a redis:// URL.
func Open(URL string, opts ...Option) (*Store, error) {
	options, err := goredis.ParseURL(URL)
	if err != nil {
		return nil, err
	}
	return New(goredis.NewClient(options), opts...), nil
}

func (s *Store) key(key string) string {
	return s.prefix + ":" + key
}

func (s *Store) Load(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode %v: %w", key, err)
	}
	return true, nil
}

func (s *Store) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), data, s.ttl).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
