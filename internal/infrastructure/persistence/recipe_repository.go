package persistence

import (
	"context"
	"time"

	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/core/search"
	"recipe-browser/internal/pkg/common"

	"gorm.io/gorm"
)

// RecipeRepository 以 gorm 實作的食譜查詢
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 創建食譜資料庫存取
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Count 執行計數查詢
func (r *RecipeRepository) Count(ctx context.Context, q search.Query) (int64, error) {
	var total int64
	if err := r.raw(ctx, q).Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Find 執行資料查詢
func (r *RecipeRepository) Find(ctx context.Context, q search.Query) ([]recipe.Recipe, error) {
	var rows []recipeRow
	if err := r.raw(ctx, q).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toRecipes(rows), nil
}

// ByID 單一食譜，找不到時回傳 common.ErrRecipeNotFound
func (r *RecipeRepository) ByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	var rows []recipeRow
	err := r.base(ctx).
		Where("r.recipe_id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, common.ErrRecipeNotFound
	}
	rec := toRecipe(rows[0])
	return &rec, nil
}

// ByIDs 依 ID 取出多筆食譜，依名稱排序
func (r *RecipeRepository) ByIDs(ctx context.Context, ids []int64) ([]recipe.Recipe, error) {
	if len(ids) == 0 {
		return []recipe.Recipe{}, nil
	}
	var rows []recipeRow
	err := r.base(ctx).
		Where("r.recipe_id IN ?", ids).
		Order("r.recipe_name ASC").
		Order("r.recipe_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toRecipes(rows), nil
}

// Reviews 食譜評論，由新到舊
func (r *RecipeRepository) Reviews(ctx context.Context, recipeID int64) ([]recipe.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("date_submitted DESC").
		Order("review_id DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	reviews := make([]recipe.Review, 0, len(models))
	for _, m := range models {
		reviews = append(reviews, recipe.Review{
			ID:            m.ReviewID,
			RecipeID:      m.RecipeID,
			AuthorName:    m.AuthorName,
			Rating:        m.Rating,
			Text:          m.Review,
			DateSubmitted: m.DateSubmitted,
		})
	}
	return reviews, nil
}

// raw 沒有具名參數時不可傳入參數表，否則會被當成位置參數綁定
func (r *RecipeRepository) raw(ctx context.Context, q search.Query) *gorm.DB {
	db := r.db.WithContext(ctx)
	if len(q.Args) == 0 {
		return db.Raw(q.SQL)
	}
	return db.Raw(q.SQL, q.Args)
}

func (r *RecipeRepository) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("recipes r").
		Select(search.SelectColumns).
		Joins("LEFT JOIN meals m ON m.meal_id = r.recipe_id")
}

func toRecipes(rows []recipeRow) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRecipe(row))
	}
	return out
}

func toRecipe(row recipeRow) recipe.Recipe {
	rec := recipe.Recipe{
		ID:                   row.RecipeID,
		Name:                 str(row.RecipeName),
		Description:          str(row.Description),
		AuthorName:           str(row.AuthorName),
		Category:             str(row.Category),
		ImageRef:             str(row.ImageURL),
		AverageRating:        row.AverageRating,
		Ingredients:          str(row.Ingredients),
		IngredientQuantities: str(row.IngredientQuantities),
		Instructions:         str(row.Instructions),
		Servings:             row.RecipeServings,
	}
	if row.AuthorID != nil {
		rec.AuthorID = *row.AuthorID
	}
	if row.RatingCount != nil {
		rec.RatingCount = *row.RatingCount
	}
	if row.DatePublished != nil {
		rec.DatePublished = *row.DatePublished
	}
	if row.MealID != nil {
		rec.Nutrition = &recipe.NutritionFacts{
			Calories:     row.Calories,
			Fat:          row.Fat,
			SaturatedFat: row.SaturatedFat,
			Cholesterol:  row.Cholesterol,
			Sodium:       row.Sodium,
			Carbohydrate: row.Carbohydrate,
			Fiber:        row.Fiber,
			Sugar:        row.Sugar,
			Protein:      row.Protein,
			PrepTime:     seconds(row.PrepTimeSeconds),
			CookTime:     seconds(row.CookTimeSeconds),
			TotalTime:    seconds(row.TotalTimeSeconds),
			Yield:        str(row.RecipeYield),
		}
	}
	return rec
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func seconds(p *int64) time.Duration {
	if p == nil {
		return 0
	}
	return time.Duration(*p) * time.Second
}
