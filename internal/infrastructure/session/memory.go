package session

import (
	"context"
	"sync"
	"time"

	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
)

type memoryEntry struct {
	identity  common.Identity
	expiresAt time.Time
}

// MemoryStore 單機用的登入狀態儲存，背景定期清除過期項目
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// NewMemoryStore 創建記憶體儲存
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	go s.sweep(sweepInterval(ttl))
	return s
}

func sweepInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval > 10*time.Minute {
		interval = 10 * time.Minute
	}
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

// Create 建立新的登入狀態
func (s *MemoryStore) Create(_ context.Context, identity common.Identity) (string, error) {
	id := newID()
	s.mu.Lock()
	s.entries[id] = memoryEntry{identity: identity, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

// Get 取得身分
func (s *MemoryStore) Get(_ context.Context, id string) (*common.Identity, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, common.ErrSessionNotFound
	}
	identity := e.identity
	return &identity, nil
}

// Delete 移除登入狀態，不存在時不視為錯誤
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Len 目前保存的項目數
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close 停止背景清理
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := s.removeExpired(); n > 0 {
				common.LogDebug("清除過期登入狀態", zap.Int("count", n))
			}
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}
