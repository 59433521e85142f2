package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// RedisStore 多實例共用的登入狀態儲存，過期交給 Redis TTL
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore 連線 Redis 並測試連接
func NewRedisStore(cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisStoreWithClient(client, cfg.Prefix, ttl), nil
}

// NewRedisStoreWithClient 使用既有的連線
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

// Create 建立新的登入狀態
func (s *RedisStore) Create(ctx context.Context, identity common.Identity) (string, error) {
	data, err := common.ToJSON(identity)
	if err != nil {
		return "", err
	}
	id := newID()
	if err := s.client.Set(ctx, s.key(id), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return id, nil
}

// Get 取得身分
func (s *RedisStore) Get(ctx context.Context, id string) (*common.Identity, error) {
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var identity common.Identity
	if err := common.ParseJSON(data, &identity); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &identity, nil
}

// Delete 移除登入狀態
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}
