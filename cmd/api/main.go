package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-browser/internal/api"
	"recipe-browser/internal/core/cache"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/core/user"
	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/infrastructure/monitoring"
	"recipe-browser/internal/infrastructure/persistence"
	"recipe-browser/internal/infrastructure/session"
	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(common.LoggerOptions{
		Level:   cfg.Log.Level,
		Mode:    cfg.Log.Mode,
		File:    cfg.Log.File,
		Console: cfg.Log.Console,
		Service: cfg.App.Name,
	}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("page_size", cfg.Search.PageSize),
	)

	// 連線資料庫
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		if err := persistence.Close(db); err != nil {
			common.LogWarn("Failed to close database", zap.Error(err))
		}
	}()

	if cfg.Database.Seed {
		if err := persistence.Seed(context.Background(), db); err != nil {
			common.LogFatal("Failed to seed database", zap.Error(err))
		}
	}

	// 初始化快取與登入狀態
	cacheManager := cache.NewManager(cfg.Cache)
	defer cacheManager.Close()

	sessions, err := session.New(cfg.Session, cfg.Redis)
	if err != nil {
		common.LogFatal("Failed to initialize session store", zap.Error(err))
	}
	defer sessions.Close()

	// 初始化服務
	metrics := monitoring.NewMetrics()
	users := user.NewService(persistence.NewUserRepository(db), bcrypt.DefaultCost)
	recipes := recipe.NewService(persistence.NewRecipeRepository(db), users, cacheManager, metrics, cfg.Search)

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Dependencies{
		Recipes:  recipes,
		Users:    users,
		Sessions: sessions,
		Cache:    cacheManager,
		Metrics:  metrics,
		Ping: func(ctx context.Context) error {
			return persistence.Ping(ctx, db)
		},
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}
	defer router.Close()

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
