package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	key    string
}

// NewRedis constructs a redis-backed credential store for setups where
// the token is shared between client processes.
func NewRedis(cfg Config) (Store, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration missing")
	}
	if cfg.Redis.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	client := redis.NewClient(opts)

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Redis.Prefix
	if prefix == "" {
		prefix = "veritas:"
	}
	name := cfg.Namespace
	if name == "" {
		name = DefaultNamespace
	}
	return &redisStore{
		client: client,
		key:    prefix + name,
	}, nil
}

func (s *redisStore) Save(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, 0).Err()
}

func (s *redisStore) Load(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

func (s *redisStore) Stats(ctx context.Context) (map[string]any, error) {
	exists, err := s.client.Exists(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"type":    "redis",
		"key":     s.key,
		"present": exists > 0,
	}, nil
}

func (s *redisStore) Close(context.Context) error {
	return s.client.Close()
}
