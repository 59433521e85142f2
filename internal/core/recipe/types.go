package recipe

import (
	"time"

	"recipe-browser/internal/core/search"
)

// Recipe 食譜，搜尋端唯讀
type Recipe struct {
	ID                   int64           `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description,omitempty"`
	AuthorID             int64           `json:"author_id"`
	AuthorName           string          `json:"author_name"`
	Category             string          `json:"category,omitempty"`
	ImageRef             string          `json:"-"`
	ImageURL             string          `json:"image_url,omitempty"`
	AverageRating        *float64        `json:"average_rating"`
	RatingCount          int             `json:"rating_count"`
	DatePublished        time.Time       `json:"date_published"`
	Ingredients          string          `json:"ingredients,omitempty"`
	IngredientQuantities string          `json:"ingredient_quantities,omitempty"`
	Instructions         string          `json:"instructions,omitempty"`
	Servings             *float64        `json:"servings"`
	Nutrition            *NutritionFacts `json:"nutrition,omitempty"`
}

// NutritionFacts 營養與時間資料，與 Recipe 一對一
type NutritionFacts struct {
	Calories     *float64      `json:"calories"`
	Fat          *float64      `json:"fat"`
	SaturatedFat *float64      `json:"saturated_fat"`
	Cholesterol  *float64      `json:"cholesterol"`
	Sodium       *float64      `json:"sodium"`
	Carbohydrate *float64      `json:"carbohydrate"`
	Fiber        *float64      `json:"fiber"`
	Sugar        *float64      `json:"sugar"`
	Protein      *float64      `json:"protein"`
	PrepTime     time.Duration `json:"prep_time"`
	CookTime     time.Duration `json:"cook_time"`
	TotalTime    time.Duration `json:"total_time"`
	Yield        string        `json:"yield,omitempty"`
}

// Review 食譜評論
type Review struct {
	ID            int64     `json:"id"`
	RecipeID      int64     `json:"recipe_id"`
	AuthorName    string    `json:"author_name"`
	Rating        int       `json:"rating"`
	Text          string    `json:"review"`
	DateSubmitted time.Time `json:"date_submitted"`
}

// Detail 食譜詳細頁資料
type Detail struct {
	Recipe  Recipe   `json:"recipe"`
	Reviews []Review `json:"reviews"`
}

// SearchResult 一頁搜尋結果
type SearchResult struct {
	Recipes []Recipe `json:"results"`
	search.Page
}

// CategoryResult 分類頁結果
type CategoryResult struct {
	Category string `json:"category"`
	SearchResult
}
