package middleware

import (
	"context"
	"errors"
	"time"

	"recipe-browser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout 為請求上下文加上逾時，資料庫查詢會一併取消；處理完仍未回應時回傳 408
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			common.LogWarn("請求逾時",
				zap.String("path", c.Request.URL.Path),
				zap.Duration("timeout", d),
				zap.String("request_id", common.RequestID(c)),
			)
			common.WriteErrorResponse(c, common.ErrRequestTimeout, false)
		}
	}
}
