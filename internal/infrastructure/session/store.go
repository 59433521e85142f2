// Package session 保存登入狀態：cookie 內只放隨機 ID，身分存放於記憶體或 Redis。
package session

import (
	"context"
	"fmt"

	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/pkg/common"

	"github.com/google/uuid"
)

// Store 登入狀態儲存，找不到或過期時回傳 common.ErrSessionNotFound
type Store interface {
	Create(ctx context.Context, identity common.Identity) (string, error)
	Get(ctx context.Context, id string) (*common.Identity, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// New 依設定建立儲存
func New(cfg config.SessionConfig, redisCfg config.RedisConfig) (Store, error) {
	switch cfg.Store {
	case "", "memory":
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		return NewRedisStore(redisCfg, cfg.TTL)
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Store)
	}
}

func newID() string {
	return uuid.NewString()
}
