package kv

import (
	"context"
	"errors"

	"metromobiles/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// RedisStore backs the blob store with Redis, for kiosk deployments where the
// storefront state must survive the local filesystem.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(addr, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errs.Wrap(err, "failed to connect to redis")
	}

	return &RedisStore{client: client, prefix: prefix}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, errs.Wrap(err, "failed to read blob from redis")
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errs.Wrap(err, "failed to write blob to redis")
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errs.Wrap(err, "failed to delete blob from redis")
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
