// Package recipe 提供食譜搜尋、分類、最新食譜與詳細頁的查詢服務。
package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipe-browser/internal/core/cache"
	"recipe-browser/internal/core/pantry"
	"recipe-browser/internal/core/search"
	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
)

// Repository 食譜資料來源
type Repository interface {
	Count(ctx context.Context, q search.Query) (int64, error)
	Find(ctx context.Context, q search.Query) ([]Recipe, error)
	ByID(ctx context.Context, id int64) (*Recipe, error)
	ByIDs(ctx context.Context, ids []int64) ([]Recipe, error)
	Reviews(ctx context.Context, recipeID int64) ([]Review, error)
}

// PantrySource 讀取使用者食材
type PantrySource interface {
	Pantry(ctx context.Context, username string) ([]pantry.Item, error)
}

// Observer 查詢耗時與錯誤的觀測點
type Observer interface {
	ObserveQuery(name string, d time.Duration, err error)
	ObserveSearch(mode string, pantryMatch bool, results int64)
}

// Service 食譜查詢服務
type Service struct {
	repo         Repository
	pantry       PantrySource
	cacheManager *cache.CacheManager
	observer     Observer
	cfg          config.SearchConfig
}

// NewService 創建新的食譜服務
func NewService(repo Repository, pantrySource PantrySource, cacheManager *cache.CacheManager, observer Observer, cfg config.SearchConfig) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = search.DefaultPageSize
	}
	if cfg.PantryPrefetchLimit < cfg.PageSize {
		cfg.PantryPrefetchLimit = cfg.PageSize
	}
	if cfg.NewestLimit <= 0 {
		cfg.NewestLimit = 20
	}
	if cfg.MaxNewestLimit < cfg.NewestLimit {
		cfg.MaxNewestLimit = cfg.NewestLimit
	}
	return &Service{
		repo:         repo,
		pantry:       pantrySource,
		cacheManager: cacheManager,
		observer:     observer,
		cfg:          cfg,
	}
}

// PageSize 每頁筆數
func (s *Service) PageSize() int {
	return s.cfg.PageSize
}

// getCacheKey 生成緩存鍵
func (s *Service) getCacheKey(q search.Query) string {
	args, err := common.ToJSON(q.Args)
	if err != nil {
		args = fmt.Sprint(q.Args)
	}
	return q.SQL + "|" + args
}

// getFromCache 從緩存獲取數據
func (s *Service) getFromCache(ctx context.Context, namespace, key string) (string, bool) {
	if s.cacheManager == nil {
		return "", false
	}
	v, err := s.cacheManager.Get(ctx, namespace, key)
	if err != nil {
		return "", false
	}
	return v, true
}

// setToCache 將數據存入緩存
func (s *Service) setToCache(ctx context.Context, namespace, key, value string) {
	if s.cacheManager == nil {
		return
	}
	if err := s.cacheManager.Set(ctx, namespace, key, value); err != nil && !errors.Is(err, common.ErrCacheFull) {
		common.LogWarn("快取寫入失敗", zap.String("namespace", namespace), zap.Error(err))
	}
}

// observe 記錄查詢耗時
func (s *Service) observe(name string, start time.Time, err error) {
	d := time.Since(start)
	common.LogQuery(name, d, err, "")
	if s.observer != nil {
		s.observer.ObserveQuery(name, d, err)
	}
}

// decorate 補上可顯示的圖片網址
func decorate(recipes []Recipe) []Recipe {
	for i := range recipes {
		recipes[i].ImageURL = FirstImageURL(recipes[i].ImageRef)
	}
	return recipes
}
