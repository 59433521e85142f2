package api

import (
	"context"
	"time"

	authHandler "recipe-browser/internal/api/handlers/auth"
	"recipe-browser/internal/api/handlers/health"
	recipeHandler "recipe-browser/internal/api/handlers/recipe"
	userHandler "recipe-browser/internal/api/handlers/user"
	"recipe-browser/internal/api/middleware"
	"recipe-browser/internal/core/cache"
	recipeService "recipe-browser/internal/core/recipe"
	userService "recipe-browser/internal/core/user"
	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/infrastructure/monitoring"
	"recipe-browser/internal/infrastructure/session"
	"recipe-browser/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由需要的服務
type Dependencies struct {
	Recipes  *recipeService.Service
	Users    *userService.Service
	Sessions session.Store
	Cache    *cache.CacheManager
	Metrics  *monitoring.Metrics
	Ping     func(ctx context.Context) error
}

// Router gin 引擎與需要關閉的背景元件
type Router struct {
	*gin.Engine
	closers []func()
}

// Close 停止限流與去重的背景清理
func (r *Router) Close() {
	for _, c := range r.closers {
		c()
	}
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) (*Router, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := authHandler.RegisterValidators(); err != nil {
		return nil, err
	}

	// 創建路由引擎
	engine := gin.New()
	router := &Router{Engine: engine}

	// 註冊基礎中間件
	engine.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Metrics(deps.Metrics))

	// CORS 設置
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制與逾時
	engine.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	engine.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst)
		router.closers = append(router.closers, limiter.Close)
		engine.Use(limiter.Middleware())
	}

	cookieName := cfg.Session.CookieName
	engine.Use(middleware.Session(deps.Sessions, cookieName))
	engine.Use(middleware.Logger())

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	router.closers = append(router.closers, dedup.Close)

	// 健康檢查路由
	var cacheStats health.StatsFunc
	if deps.Cache != nil {
		cacheStats = deps.Cache.GetStats
	}
	healthHandler := health.NewHandler(cfg, deps.Ping, cacheStats)
	engine.GET("/health", healthHandler.HealthCheck)
	engine.GET("/ready", healthHandler.ReadinessCheck)
	engine.GET("/live", healthHandler.LivenessCheck)
	engine.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	recipes := recipeHandler.NewHandler(deps.Recipes, deps.Users, cfg.App.Debug)
	auth := authHandler.NewHandler(deps.Users, deps.Sessions, cfg.Session)
	users := userHandler.NewHandler(deps.Users, deps.Recipes, cfg.App.Debug)

	// API 路由組
	api := engine.Group("/api/v1")
	{
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipes.Search)
			recipeGroup.GET("/all", recipes.All)
			recipeGroup.GET("/newest", recipes.Newest)
			recipeGroup.GET("/:id", recipes.Detail)
		}

		api.GET("/categories/:name/recipes", recipes.Category)
		api.GET("/pantry/ingredients", recipes.PantryIngredients)

		authGroup := api.Group("/auth", dedup.Middleware(cookieName))
		{
			authGroup.POST("/signup", auth.SignUp)
			authGroup.POST("/signin", auth.SignIn)
			authGroup.POST("/signout", auth.SignOut)
		}

		api.POST("/favorites", dedup.Middleware(cookieName), users.UpdateFavorite)

		me := api.Group("/me", middleware.RequireIdentity())
		{
			me.GET("/favorites", users.Favorites)
			me.GET("/pantry", users.Pantry)
			me.POST("/pantry", dedup.Middleware(cookieName), users.UpdatePantry)
		}
	}

	engine.NoRoute(func(c *gin.Context) {
		common.WriteErrorResponse(c, common.ErrNotFound, cfg.App.Debug)
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.String("session_store", cfg.Session.Store),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
