// Package persistencetest 提供測試用的 SQLite 記憶體資料庫與食譜建構工具。
package persistencetest

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"recipe-browser/internal/infrastructure/config"
	"recipe-browser/internal/infrastructure/persistence"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var dbCounter atomic.Int64

// NewDB 每次呼叫建立獨立的記憶體資料庫並完成遷移
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:recipes_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := persistence.Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          dsn,
		MaxOpenConns: 1,
		AutoMigrate:  true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = persistence.Close(db) })
	return db
}

// Recipe 建立一筆食譜的選項
type Recipe struct {
	Name        string
	Author      string
	AuthorID    int64
	Category    string
	Image       string
	Rating      *float64
	Published   time.Time
	Ingredients string
	Servings    *float64
	Meal        *persistence.MealModel
}

// Float 取址工具
func Float(f float64) *float64 { return &f }

// Seconds 取址工具
func Seconds(s int64) *int64 { return &s }

// Insert 寫入食譜並回傳產生的 ID
func Insert(t testing.TB, db *gorm.DB, recipes ...Recipe) []int64 {
	t.Helper()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	seeds := make([]persistence.SeedRecipe, 0, len(recipes))
	for i, r := range recipes {
		published := r.Published
		if published.IsZero() {
			published = base.Add(time.Duration(i) * time.Hour)
		}
		m := persistence.RecipeModel{
			RecipeName:     r.Name,
			AuthorID:       r.AuthorID,
			AuthorName:     r.Author,
			Category:       r.Category,
			AverageRating:  r.Rating,
			DatePublished:  published,
			RecipeServings: r.Servings,
		}
		if r.Image != "" {
			img := r.Image
			m.ImageURL = &img
		}
		if r.Ingredients != "" {
			ing := r.Ingredients
			m.Ingredients = &ing
		}
		seeds = append(seeds, persistence.SeedRecipe{Recipe: m, Meal: r.Meal})
	}
	require.NoError(t, persistence.Insert(context.Background(), db, seeds...))

	ids := make([]int64, 0, len(seeds))
	for _, s := range seeds {
		ids = append(ids, s.Recipe.RecipeID)
	}
	return ids
}
