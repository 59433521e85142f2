package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"sync"
	"time"

	"recipe-browser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultDedupWindow = time.Second

// Deduplicator 短時間內相同的 POST 只處理一次
type Deduplicator struct {
	mu       sync.Mutex
	requests map[string]time.Time
	window   time.Duration
	now      func() time.Time
	done     chan struct{}
	once     sync.Once
}

// NewDeduplicator 建立去重器並啟動背景清理
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = defaultDedupWindow
	}
	d := &Deduplicator{
		requests: make(map[string]time.Time),
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go d.cleanupLoop(10 * time.Minute)
	return d
}

// Close 停止背景清理
func (d *Deduplicator) Close() {
	d.once.Do(func() { close(d.done) })
}

func (d *Deduplicator) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.cleanup()
		case <-d.done:
			return
		}
	}
}

func (d *Deduplicator) cleanup() {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, t := range d.requests {
		if now.Sub(t) > 10*d.window {
			delete(d.requests, k)
		}
	}
}

// seen 記錄指紋，窗口內重複時回傳 true
func (d *Deduplicator) seen(fingerprint string) bool {
	now := d.now()
	d.mu.Lock()
	defer d.mu.Unlock()
	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Middleware 請求去重中間件，指紋包含登入狀態 cookie
func (d *Deduplicator) Middleware(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 只處理 POST 請求
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		// 計算請求體哈希
		bodyHash := ""
		if c.Request.Body != nil {
			body, err := io.ReadAll(c.Request.Body)
			if err != nil {
				common.LogError("Failed to read request body", zap.Error(err))
				c.Next()
				return
			}
			hash := sha256.Sum256(body)
			bodyHash = hex.EncodeToString(hash[:])

			// 恢復請求體
			c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
		}

		// 生成請求指紋
		fingerprint := c.Request.Method + ":" + c.Request.URL.Path + ":" + c.ClientIP()
		if cookie, err := c.Cookie(cookieName); err == nil {
			fingerprint += ":" + cookie
		}
		if bodyHash != "" {
			fingerprint += ":" + bodyHash
		}

		if d.seen(fingerprint) {
			common.LogInfo("重複請求",
				zap.String("path", c.Request.URL.Path),
				zap.String("ip", c.ClientIP()),
			)
			common.WriteErrorResponse(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
