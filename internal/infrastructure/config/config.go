package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig       `mapstructure:"app"`
	Server      ServerConfig    `mapstructure:"server"`
	Database    DatabaseConfig  `mapstructure:"database"`
	Cache       CacheConfig     `mapstructure:"cache"`
	Session     SessionConfig   `mapstructure:"session"`
	Redis       RedisConfig     `mapstructure:"redis"`
	Search      SearchConfig    `mapstructure:"search"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Log         LogConfig       `mapstructure:"log"`
	DedupWindow time.Duration   `mapstructure:"dedup_window"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// LogConfig 日誌配置
type LogConfig struct {
	Level   string `mapstructure:"level"`
	Mode    string `mapstructure:"mode"` // concise 只保留請求與啟停訊息
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig 資料庫配置
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres 或 sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	Seed            bool          `mapstructure:"seed"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// SessionConfig 登入狀態配置
type SessionConfig struct {
	Store      string        `mapstructure:"store"` // memory 或 redis
	CookieName string        `mapstructure:"cookie_name"`
	TTL        time.Duration `mapstructure:"ttl"`
	Secure     bool          `mapstructure:"secure"`
}

// RedisConfig Redis 連線配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// SearchConfig 搜尋與分頁配置
type SearchConfig struct {
	PageSize            int `mapstructure:"page_size"`
	PantryPrefetchLimit int `mapstructure:"pantry_prefetch_limit"`
	NewestLimit         int `mapstructure:"newest_limit"`
	MaxNewestLimit      int `mapstructure:"max_newest_limit"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Burst    int           `mapstructure:"burst"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("database.driver", "DB_DRIVER")
	viper.BindEnv("database.dsn", "DATABASE_URL")
	viper.BindEnv("session.store", "SESSION_STORE")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("search.page_size", "PAGE_SIZE")
	viper.BindEnv("search.pantry_prefetch_limit", "PANTRY_PREFETCH_LIMIT")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log.level", "LOG_LEVEL")
	viper.BindEnv("log.mode", "LOG_MODE")
	viper.BindEnv("log.file", "LOG_FILE")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration", "database_driver:", viper.GetString("database.driver"), "database_dsn:", maskDSN(viper.GetString("database.dsn")))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskDSN 遮罩連線字串中的密碼
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		if i := strings.Index(dsn, "password="); i >= 0 {
			end := strings.IndexByte(dsn[i:], ' ')
			if end < 0 {
				return dsn[:i] + "password=****"
			}
			return dsn[:i] + "password=****" + dsn[i+end:]
		}
		return dsn
	}
	scheme := strings.Index(dsn, "://")
	colon := strings.LastIndex(dsn[:at], ":")
	if colon <= scheme+2 {
		return dsn
	}
	return dsn[:colon+1] + "****" + dsn[at:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-browser")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.request_timeout", "15s")
	viper.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 資料庫設定
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "recipes.db")
	viper.SetDefault("database.max_open_conns", 20)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "30m")
	viper.SetDefault("database.auto_migrate", true)
	viper.SetDefault("database.seed", false)
	viper.SetDefault("database.slow_threshold", "500ms")

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "5m")
	viper.SetDefault("cache.cleanup_interval", "10m")

	// 登入狀態設定
	viper.SetDefault("session.store", "memory")
	viper.SetDefault("session.cookie_name", "recipe_session")
	viper.SetDefault("session.ttl", "24h")
	viper.SetDefault("session.secure", false)

	// Redis 設定
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.prefix", "recipe:session:")

	// 搜尋設定
	viper.SetDefault("search.page_size", 20)
	viper.SetDefault("search.pantry_prefetch_limit", 500)
	viper.SetDefault("search.newest_limit", 20)
	viper.SetDefault("search.max_newest_limit", 100)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")
	viper.SetDefault("rate_limit.burst", 20)

	// 日誌設定
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.mode", "")
	viper.SetDefault("log.file", "logs/app.log")
	viper.SetDefault("log.console", true)

	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證資料庫設定
	switch config.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}
	if config.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證登入狀態設定
	switch config.Session.Store {
	case "memory":
	case "redis":
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis addr is required for redis session store")
		}
	default:
		return fmt.Errorf("unsupported session store %q", config.Session.Store)
	}
	if config.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl")
	}

	// 驗證搜尋設定
	if config.Search.PageSize <= 0 {
		return fmt.Errorf("invalid search page size")
	}
	if config.Search.PantryPrefetchLimit < config.Search.PageSize {
		return fmt.Errorf("pantry prefetch limit must be at least one page")
	}

	// 驗證限流設定
	if config.RateLimit.Enabled && (config.RateLimit.Requests <= 0 || config.RateLimit.Window <= 0) {
		return fmt.Errorf("invalid rate limit")
	}

	return nil
}
