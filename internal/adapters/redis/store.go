package redisad

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"suite_hotel/internal/domain"
)

// Store is durable key/value storage without expiry, used for the wallet
// session profile.
type Store struct {
	c      *redis.Client
	prefix string
}

func NewStore(c *redis.Client) *Store {
	return &Store{c: c, prefix: "kv:"}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.c.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	return b, err
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.c.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.c.Del(ctx, s.prefix+key).Err()
}
