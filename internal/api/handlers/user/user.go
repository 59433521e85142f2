// Package user 處理收藏與食材清單端點。
package user

import (
	"errors"
	"net/http"

	"recipe-browser/internal/api/middleware"
	recipeService "recipe-browser/internal/core/recipe"
	userService "recipe-browser/internal/core/user"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FavoriteRequest 收藏變更
type FavoriteRequest struct {
	RecipeID int64  `json:"recipeId" binding:"required,gt=0"`
	Action   string `json:"action" binding:"required,oneof=add remove"`
}

// PantryRequest 食材清單變更，update 與 delete 需要 index
type PantryRequest struct {
	Action   string `json:"action" binding:"required,oneof=add update delete"`
	Index    *int   `json:"index"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// Handler 使用者資料處理程序
type Handler struct {
	users   *userService.Service
	recipes *recipeService.Service
	debug   bool
}

// NewHandler 創建使用者資料處理程序
func NewHandler(users *userService.Service, recipes *recipeService.Service, debug bool) *Handler {
	return &Handler{users: users, recipes: recipes, debug: debug}
}

// UpdateFavorite 新增或移除收藏，結果以 success 欄位回報
func (h *Handler) UpdateFavorite(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusOK, common.ActionResponse{Message: "Please sign in to add recipes to favorites."})
		return
	}

	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ActionResponse{Message: common.ErrInvalidAction.Message})
		return
	}

	_, err := h.users.UpdateFavorite(c.Request.Context(), identity.Username, req.RecipeID, userService.FavoriteAction(req.Action))
	if err != nil {
		if errors.Is(err, common.ErrInvalidAction) {
			c.JSON(http.StatusBadRequest, common.ActionResponse{Message: common.ErrInvalidAction.Message})
			return
		}
		common.LogError("更新收藏失敗",
			zap.Error(err),
			zap.String("username", identity.Username),
			zap.Int64("recipe_id", req.RecipeID),
			zap.String("request_id", requestid.Get(c)),
		)
		c.JSON(http.StatusInternalServerError, common.ActionResponse{Message: "Failed to update favorites."})
		return
	}

	c.JSON(http.StatusOK, common.ActionResponse{Success: true, Message: "Favorites updated."})
}

// Favorites 收藏的食譜，依名稱排序
func (h *Handler) Favorites(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	ctx := c.Request.Context()

	ids, err := h.users.Favorites(ctx, identity.Username)
	if err != nil {
		h.fail(c, "讀取收藏失敗", err)
		return
	}
	rows, err := h.recipes.ByIDs(ctx, ids)
	if err != nil {
		h.fail(c, "讀取收藏食譜失敗", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": rows, "favorites": ids})
}

// Pantry 使用者食材與解析後的數量
func (h *Handler) Pantry(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)
	entries, err := h.users.PantryEntries(c.Request.Context(), identity.Username)
	if err != nil {
		h.fail(c, "讀取食材失敗", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// UpdatePantry 新增、修改或刪除一項食材
func (h *Handler) UpdatePantry(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	var req PantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteErrorResponse(c, common.ErrInvalidAction.Wrap(err), h.debug)
		return
	}

	entries, err := h.users.UpdatePantry(c.Request.Context(), identity.Username, userService.PantryChange{
		Action:   userService.PantryAction(req.Action),
		Index:    req.Index,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
	})
	if err != nil {
		h.fail(c, "更新食材失敗", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

func (h *Handler) fail(c *gin.Context, msg string, err error) {
	if common.AsCustomError(err).Status >= http.StatusInternalServerError {
		common.LogError(msg, zap.Error(err), zap.String("request_id", requestid.Get(c)))
	}
	common.WriteErrorResponse(c, err, h.debug)
}
