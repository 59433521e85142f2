package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return LoadConfig()
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 20, cfg.Search.PageSize)
	assert.Equal(t, 500, cfg.Search.PantryPrefetchLimit)
	assert.Equal(t, 100, cfg.Search.MaxNewestLimit)
	assert.Equal(t, time.Second, cfg.DedupWindow)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Log.Console)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PAGE_SIZE", "5")
	t.Setenv("PANTRY_PREFETCH_LIMIT", "50")
	t.Setenv("DEDUP_WINDOW", "250ms")
	t.Setenv("LOG_MODE", "concise")
	t.Setenv("APP_CACHE_TTL", "30s")

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Search.PageSize)
	assert.Equal(t, 50, cfg.Search.PantryPrefetchLimit)
	assert.Equal(t, 250*time.Millisecond, cfg.DedupWindow)
	assert.Equal(t, "concise", cfg.Log.Mode)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}},
		{"unknown session store", map[string]string{"SESSION_STORE": "file"}},
		{"prefetch smaller than a page", map[string]string{"PAGE_SIZE": "50", "PANTRY_PREFETCH_LIMIT": "10"}},
		{"rate limit without requests", map[string]string{"RATE_LIMIT_REQUESTS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(t)
			assert.Error(t, err)
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "postgres://app:****@db:5432/recipes", maskDSN("postgres://app:s3cret@db:5432/recipes"))
	assert.Equal(t, "host=db user=app password=**** dbname=recipes", maskDSN("host=db user=app password=s3cret dbname=recipes"))
	assert.Equal(t, "recipes.db", maskDSN("recipes.db"))
}
