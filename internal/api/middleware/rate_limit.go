package middleware

import (
	"math"
	"strconv"
	"sync"
	"time"

	"recipe-browser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter 以用戶端 IP 區分的令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	interval time.Duration
	burst    int
	idle     time.Duration
	done     chan struct{}
	once     sync.Once
}

// NewRateLimiter 每個 IP 在 window 內允許 requests 次，另可突發 burst 次
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if burst <= 0 {
		burst = 1
	}
	interval := window / time.Duration(requests)
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(interval),
		interval: interval,
		burst:    burst,
		idle:     10 * time.Minute,
		done:     make(chan struct{}),
	}
	go rl.cleanupLoop(time.Minute)
	return rl
}

// getLimiter 取得或建立 IP 對應的限流器
func (rl *RateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.getLimiter(ip).Allow()
}

func (rl *RateLimiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if time.Since(v.lastSeen) > rl.idle {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.done:
			return
		}
	}
}

// Close 停止背景清理
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.done) })
}

// Middleware 限流中間件
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(math.Max(1, math.Ceil(rl.interval.Seconds()))))

	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", retryAfter)
			common.WriteErrorResponse(c, common.ErrTooManyRequests, false)
			return
		}

		c.Next()
	}
}
