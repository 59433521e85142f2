package persistence

import "time"

// RecipeModel recipes 資料表
type RecipeModel struct {
	RecipeID             int64     `gorm:"column:recipe_id;primaryKey;autoIncrement"`
	RecipeName           string    `gorm:"column:recipe_name;size:255;index"`
	Description          *string   `gorm:"column:description;type:text"`
	AuthorID             int64     `gorm:"column:author_id;index"`
	AuthorName           string    `gorm:"column:author_name;size:255;index"`
	Category             string    `gorm:"column:category;size:128;index"`
	ImageURL             *string   `gorm:"column:image_url;type:text"`
	AverageRating        *float64  `gorm:"column:average_rating"`
	RatingCount          int       `gorm:"column:rating_count;not null;default:0"`
	DatePublished        time.Time `gorm:"column:date_published;index"`
	Ingredients          *string   `gorm:"column:ingredients;type:text"`
	IngredientQuantities *string   `gorm:"column:ingredient_quantities;type:text"`
	Instructions         *string   `gorm:"column:instructions;type:text"`
	RecipeServings       *float64  `gorm:"column:recipe_servings"`
}

// TableName 資料表名稱
func (RecipeModel) TableName() string { return "recipes" }

// MealModel meals 資料表，meal_id 等於 recipe_id
type MealModel struct {
	MealID           int64    `gorm:"column:meal_id;primaryKey;autoIncrement:false"`
	Calories         *float64 `gorm:"column:calories"`
	Fat              *float64 `gorm:"column:fat"`
	SaturatedFat     *float64 `gorm:"column:saturated_fat"`
	Cholesterol      *float64 `gorm:"column:cholesterol"`
	Sodium           *float64 `gorm:"column:sodium"`
	Carbohydrate     *float64 `gorm:"column:carbohydrate"`
	Fiber            *float64 `gorm:"column:fiber"`
	Sugar            *float64 `gorm:"column:sugar"`
	Protein          *float64 `gorm:"column:protein"`
	PrepTimeSeconds  *int64   `gorm:"column:prep_time_seconds"`
	CookTimeSeconds  *int64   `gorm:"column:cook_time_seconds"`
	TotalTimeSeconds *int64   `gorm:"column:total_time_seconds"`
	RecipeYield      *string  `gorm:"column:recipe_yield;size:255"`
}

// TableName 資料表名稱
func (MealModel) TableName() string { return "meals" }

// ReviewModel reviews 資料表
type ReviewModel struct {
	ReviewID      int64     `gorm:"column:review_id;primaryKey;autoIncrement"`
	RecipeID      int64     `gorm:"column:recipe_id;index"`
	AuthorName    string    `gorm:"column:author_name;size:255"`
	Rating        int       `gorm:"column:rating"`
	Review        string    `gorm:"column:review;type:text"`
	DateSubmitted time.Time `gorm:"column:date_submitted;index"`
}

// TableName 資料表名稱
func (ReviewModel) TableName() string { return "reviews" }

// UserModel users 資料表，收藏與食材以 JSON 陣列存放
type UserModel struct {
	UserID       int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	Username     string    `gorm:"column:username;size:64;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;size:255;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:255;not null"`
	Favorites    string    `gorm:"column:favorites;type:text"`
	PantryItems  string    `gorm:"column:pantry_items;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName 資料表名稱
func (UserModel) TableName() string { return "users" }

// recipeRow 搜尋查詢的一列，LEFT JOIN 的欄位可能為 NULL
type recipeRow struct {
	RecipeID             int64      `gorm:"column:recipe_id"`
	RecipeName           *string    `gorm:"column:recipe_name"`
	Description          *string    `gorm:"column:description"`
	AuthorID             *int64     `gorm:"column:author_id"`
	AuthorName           *string    `gorm:"column:author_name"`
	Category             *string    `gorm:"column:category"`
	ImageURL             *string    `gorm:"column:image_url"`
	AverageRating        *float64   `gorm:"column:average_rating"`
	RatingCount          *int       `gorm:"column:rating_count"`
	DatePublished        *time.Time `gorm:"column:date_published"`
	Ingredients          *string    `gorm:"column:ingredients"`
	IngredientQuantities *string    `gorm:"column:ingredient_quantities"`
	Instructions         *string    `gorm:"column:instructions"`
	RecipeServings       *float64   `gorm:"column:recipe_servings"`
	MealID               *int64     `gorm:"column:meal_id"`
	Calories             *float64   `gorm:"column:calories"`
	Fat                  *float64   `gorm:"column:fat"`
	SaturatedFat         *float64   `gorm:"column:saturated_fat"`
	Cholesterol          *float64   `gorm:"column:cholesterol"`
	Sodium               *float64   `gorm:"column:sodium"`
	Carbohydrate         *float64   `gorm:"column:carbohydrate"`
	Fiber                *float64   `gorm:"column:fiber"`
	Sugar                *float64   `gorm:"column:sugar"`
	Protein              *float64   `gorm:"column:protein"`
	PrepTimeSeconds      *int64     `gorm:"column:prep_time_seconds"`
	CookTimeSeconds      *int64     `gorm:"column:cook_time_seconds"`
	TotalTimeSeconds     *int64     `gorm:"column:total_time_seconds"`
	RecipeYield          *string    `gorm:"column:recipe_yield"`
}
