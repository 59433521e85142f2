package common

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteErrorResponse 寫入錯誤響應
func WriteErrorResponse(c *gin.Context, err error, debug bool) {
	ce := AsCustomError(err)
	c.AbortWithStatusJSON(ce.Status, ce.Response(debug))
}

// RequestID 取得請求 ID
func RequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return c.Writer.Header().Get("X-Request-ID")
}
