package middleware

import (
	"time"

	"recipe-browser/internal/infrastructure/monitoring"

	"github.com/gin-gonic/gin"
)

// Metrics 記錄請求數與耗時，路徑使用路由樣板
func Metrics(m *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		m.RequestStarted()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.RecordRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
