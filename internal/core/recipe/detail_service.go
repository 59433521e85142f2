package recipe

import (
	"context"
	"errors"
	"strconv"
	"time"

	"recipe-browser/internal/core/search"
	"recipe-browser/internal/pkg/common"
)

const newestNamespace = "newest"

// Newest 最新食譜與營養資料，limit 夾在設定的範圍內
func (s *Service) Newest(ctx context.Context, limit int) ([]Recipe, error) {
	if limit <= 0 {
		limit = s.cfg.NewestLimit
	}
	if limit > s.cfg.MaxNewestLimit {
		limit = s.cfg.MaxNewestLimit
	}

	key := strconv.Itoa(limit)
	if v, ok := s.getFromCache(ctx, newestNamespace, key); ok {
		var cached []Recipe
		if err := common.ParseJSON(v, &cached); err == nil {
			return cached, nil
		}
	}

	c := search.Criteria{Mode: search.ModeName, SortKey: search.SortNewest, SortDir: search.Desc}
	start := time.Now()
	rows, err := s.repo.Find(ctx, search.DataQuery(c, limit, 0))
	s.observe("recipe_newest", start, err)
	if err != nil {
		return nil, common.ErrInternalError.Wrap(err)
	}
	rows = decorate(rows)

	if data, err := common.ToJSON(rows); err == nil {
		s.setToCache(ctx, newestNamespace, key, data)
	}
	return rows, nil
}

// Detail 單一食譜與評論，評論由新到舊
func (s *Service) Detail(ctx context.Context, id int64) (*Detail, error) {
	if id <= 0 {
		return nil, common.ErrInvalidRecipe
	}

	start := time.Now()
	r, err := s.repo.ByID(ctx, id)
	s.observe("recipe_detail", start, err)
	if err != nil {
		if errors.Is(err, common.ErrRecipeNotFound) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, common.ErrInternalError.Wrap(err)
	}
	r.ImageURL = FirstImageURL(r.ImageRef)

	start = time.Now()
	reviews, err := s.repo.Reviews(ctx, id)
	s.observe("recipe_reviews", start, err)
	if err != nil {
		return nil, common.ErrInternalError.Wrap(err)
	}
	if reviews == nil {
		reviews = []Review{}
	}

	return &Detail{Recipe: *r, Reviews: reviews}, nil
}

// ByIDs 收藏清單的食譜，依名稱排序
func (s *Service) ByIDs(ctx context.Context, ids []int64) ([]Recipe, error) {
	if len(ids) == 0 {
		return []Recipe{}, nil
	}
	start := time.Now()
	rows, err := s.repo.ByIDs(ctx, ids)
	s.observe("recipe_by_ids", start, err)
	if err != nil {
		return nil, common.ErrInternalError.Wrap(err)
	}
	return decorate(rows), nil
}
