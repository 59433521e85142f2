package recipe

import (
	"context"
	"errors"
	"strconv"
	"time"

	"recipe-browser/internal/core/pantry"
	"recipe-browser/internal/core/search"
	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
)

const countNamespace = "count"

// Search 執行進階搜尋：先計數、夾住頁碼，再取該頁資料；登入且要求時改走食材比對
func (s *Service) Search(ctx context.Context, c search.Criteria, identity *common.Identity) (*SearchResult, error) {
	if c.MatchPantry && identity != nil && s.pantry != nil {
		return s.searchPantry(ctx, c, identity.Username)
	}

	total, cached, err := s.count(ctx, c, false)
	if err != nil {
		return nil, common.ErrSearchFailed.Wrap(err)
	}

	page := search.Paginate(total, c.Page, s.cfg.PageSize)
	rows, err := s.find(ctx, search.DataQuery(c, page.Size, page.Offset))
	if err != nil {
		return nil, common.ErrSearchFailed.Wrap(err)
	}

	// 快取的總數已過時：重新計數並重取該頁
	if cached && len(rows) == 0 && total > 0 {
		common.LogDebug("快取計數過時，重新計數", zap.Int64("cached_total", total))
		if total, _, err = s.count(ctx, c, true); err != nil {
			return nil, common.ErrSearchFailed.Wrap(err)
		}
		page = search.Paginate(total, c.Page, s.cfg.PageSize)
		if rows, err = s.find(ctx, search.DataQuery(c, page.Size, page.Offset)); err != nil {
			return nil, common.ErrSearchFailed.Wrap(err)
		}
	}

	if s.observer != nil {
		s.observer.ObserveSearch(string(c.Mode), false, total)
	}
	return &SearchResult{Recipes: decorate(rows), Page: page}, nil
}

// searchPantry 取出有上限的候選列，依食材過濾後再以過濾後的數量分頁
func (s *Service) searchPantry(ctx context.Context, c search.Criteria, username string) (*SearchResult, error) {
	start := time.Now()
	items, err := s.pantry.Pantry(ctx, username)
	s.observe("user_pantry", start, err)
	if err != nil {
		return nil, common.ErrSearchFailed.Wrap(err)
	}

	rows, err := s.find(ctx, search.DataQuery(c, s.cfg.PantryPrefetchLimit, 0))
	if err != nil {
		return nil, common.ErrSearchFailed.Wrap(err)
	}

	kept := pantry.Filter(rows, func(r Recipe) string { return r.Ingredients }, pantry.NewMatcher(items))
	page := search.Paginate(int64(len(kept)), c.Page, s.cfg.PageSize)

	common.LogDebug("食材比對完成",
		zap.String("username", username),
		zap.Int("pantry_items", len(items)),
		zap.Int("candidates", len(rows)),
		zap.Int("kept", len(kept)),
	)
	if s.observer != nil {
		s.observer.ObserveSearch(string(c.Mode), true, page.TotalResults)
	}

	return &SearchResult{Recipes: decorate(search.Slice(kept, page)), Page: page}, nil
}

// count 計數查詢，結果放入快取；refresh 時略過快取直接查詢
func (s *Service) count(ctx context.Context, c search.Criteria, refresh bool) (int64, bool, error) {
	q := search.CountQuery(c)
	key := s.getCacheKey(q)
	if !refresh {
		if v, ok := s.getFromCache(ctx, countNamespace, key); ok {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				return n, true, nil
			}
		}
	}

	start := time.Now()
	total, err := s.repo.Count(ctx, q)
	s.observe("recipe_count", start, err)
	if err != nil {
		return 0, false, err
	}

	s.setToCache(ctx, countNamespace, key, strconv.FormatInt(total, 10))
	return total, false, nil
}

func (s *Service) find(ctx context.Context, q search.Query) ([]Recipe, error) {
	start := time.Now()
	rows, err := s.repo.Find(ctx, q)
	s.observe("recipe_page", start, err)
	return rows, err
}

// Category 分類頁：只列出有圖片的食譜，依名稱排序
func (s *Service) Category(ctx context.Context, name string, page int) (*CategoryResult, error) {
	if name == "" {
		return nil, common.ErrInvalidRequest.Wrap(errors.New("category name cannot be empty"))
	}
	c := search.Criteria{
		Mode:         search.ModeName,
		Category:     name,
		RequireImage: true,
		SortKey:      search.SortName,
		SortDir:      search.Asc,
		Page:         page,
	}
	res, err := s.Search(ctx, c, nil)
	if err != nil {
		return nil, err
	}
	return &CategoryResult{Category: name, SearchResult: *res}, nil
}
