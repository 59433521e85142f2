package middleware

import (
	"errors"

	"recipe-browser/internal/infrastructure/session"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Session 讀取登入 cookie，有效時把身分放進請求上下文
func Session(store session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			c.Next()
			return
		}

		identity, err := store.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, common.ErrSessionNotFound) {
				common.LogWarn("讀取登入狀態失敗", zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity 目前登入的使用者，未登入時為 nil
func CurrentIdentity(c *gin.Context) *common.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*common.Identity)
	return identity
}

// SetIdentity 設定請求上下文中的身分
func SetIdentity(c *gin.Context, identity *common.Identity) {
	c.Set(identityKey, identity)
}

// RequireIdentity 未登入時回傳 401
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			common.WriteErrorResponse(c, common.ErrUnauthorized, false)
			return
		}
		c.Next()
	}
}
