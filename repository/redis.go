// redis.go
package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// PrefsKey is the hash holding every persisted preference.
const PrefsKey = "wealthy-cats:prefs"

// Store is a flat string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, values map[string]string) error
	All(ctx context.Context) (map[string]string, error)
	Delete(ctx context.Context, keys ...string) error
}

type RedisStore struct {
	rdb *redis.Client
	key string
}

// NewRedis connects and pings Redis.
func NewRedis(ctx context.Context, addr, password string, db int, log *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis connect %s: %w", addr, err)
	}
	log.Info("✅ Redis connected", zap.String("addr", addr))
	return rdb, nil
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, key: PrefsKey}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.key, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis hget %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(values))
	for k, v := range values {
		fields[k] = v
	}
	if err := s.rdb.HSet(ctx, s.key, fields).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (s *RedisStore) All(ctx context.Context) (map[string]string, error) {
	m, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall: %w", err)
	}
	return m, nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.HDel(ctx, s.key, keys...).Err(); err != nil {
		return fmt.Errorf("redis hdel: %w", err)
	}
	return nil
}
