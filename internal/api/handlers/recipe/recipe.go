package recipe

import (
	"context"
	"net/http"
	"strconv"

	"recipe-browser/internal/api/middleware"
	"recipe-browser/internal/core/pantry"
	recipeService "recipe-browser/internal/core/recipe"
	"recipe-browser/internal/core/search"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FavoritesSource 讀取使用者收藏
type FavoritesSource interface {
	Favorites(ctx context.Context, username string) ([]int64, error)
}

// SearchResponse 搜尋與列表頁的響應，失敗時仍維持相同結構
type SearchResponse struct {
	Results      []recipeService.Recipe `json:"results"`
	TotalResults int64                  `json:"total_results"`
	TotalPages   int                    `json:"total_pages"`
	Page         int                    `json:"page"`
	PageSize     int                    `json:"page_size"`
	Criteria     string                 `json:"criteria"`
	Favorites    []int64                `json:"favorites,omitempty"`
	Error        string                 `json:"error,omitempty"`
}

// DetailResponse 詳細頁響應
type DetailResponse struct {
	recipeService.Detail
	IsFavorite bool `json:"is_favorite"`
}

// IngredientsResponse 可選食材與單位
type IngredientsResponse struct {
	Ingredients []string `json:"ingredients"`
	Units       []string `json:"units"`
}

// Handler 食譜處理程序
type Handler struct {
	recipes   *recipeService.Service
	favorites FavoritesSource
	debug     bool
}

// NewHandler 創建新的食譜處理程序
func NewHandler(recipes *recipeService.Service, favorites FavoritesSource, debug bool) *Handler {
	return &Handler{
		recipes:   recipes,
		favorites: favorites,
		debug:     debug,
	}
}

// Search 進階搜尋，預設依相關度排序
func (h *Handler) Search(c *gin.Context) {
	h.search(c, search.SearchOptions)
}

// All 全部食譜列表，預設依名稱排序
func (h *Handler) All(c *gin.Context) {
	h.search(c, search.ListingOptions)
}

func (h *Handler) search(c *gin.Context, opts search.ParseOptions) {
	ctx := c.Request.Context()
	criteria := search.ParseCriteria(c.Request.URL.Query(), opts)
	identity := middleware.CurrentIdentity(c)

	resp := SearchResponse{
		Results:    []recipeService.Recipe{},
		TotalPages: 1,
		Page:       1,
		PageSize:   h.recipes.PageSize(),
		Criteria:   search.EncodeCriteria(criteria).Encode(),
		Favorites:  h.userFavorites(ctx, identity),
	}

	res, err := h.recipes.Search(ctx, criteria, identity)
	if err != nil {
		common.LogError("搜尋失敗",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
			zap.String("criteria", resp.Criteria),
		)
		resp.Error = common.ErrSearchFailed.Message
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	if res.Recipes != nil {
		resp.Results = res.Recipes
	}
	resp.TotalResults = res.TotalResults
	resp.TotalPages = res.TotalPages
	resp.Page = res.Page.Number
	resp.PageSize = res.Size
	c.JSON(http.StatusOK, resp)
}

// Category 分類頁，只列出有圖片的食譜
func (h *Handler) Category(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	res, err := h.recipes.Category(c.Request.Context(), c.Param("name"), page)
	if err != nil {
		h.fail(c, "分類查詢失敗", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Newest 最新食譜
func (h *Handler) Newest(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.recipes.Newest(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, "最新食譜查詢失敗", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": rows})
}

// Detail 食譜詳細頁與評論
func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		common.WriteErrorResponse(c, common.ErrInvalidRecipe, h.debug)
		return
	}

	ctx := c.Request.Context()
	d, err := h.recipes.Detail(ctx, id)
	if err != nil {
		h.fail(c, "食譜查詢失敗", err)
		return
	}

	resp := DetailResponse{Detail: *d}
	for _, fav := range h.userFavorites(ctx, middleware.CurrentIdentity(c)) {
		if fav == id {
			resp.IsFavorite = true
			break
		}
	}
	c.JSON(http.StatusOK, resp)
}

// PantryIngredients 可選食材清單
func (h *Handler) PantryIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, IngredientsResponse{
		Ingredients: pantry.CommonIngredients(),
		Units:       pantry.Units,
	})
}

// userFavorites 已登入時的收藏，讀取失敗只記錄
func (h *Handler) userFavorites(ctx context.Context, identity *common.Identity) []int64 {
	if identity == nil || h.favorites == nil {
		return nil
	}
	favs, err := h.favorites.Favorites(ctx, identity.Username)
	if err != nil {
		common.LogWarn("讀取收藏失敗", zap.String("username", identity.Username), zap.Error(err))
		return nil
	}
	return favs
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	if common.AsCustomError(err).Status >= http.StatusInternalServerError {
		common.LogError(msg, zap.Error(err), zap.String("request_id", requestid.Get(c)))
	}
	common.WriteErrorResponse(c, err, h.debug)
}
