package persistence

import (
	"context"
	"fmt"
	"time"

	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedRecipe 一筆示範食譜與營養資料
type SeedRecipe struct {
	Recipe  RecipeModel
	Meal    *MealModel
	Reviews []ReviewModel
}

// Insert 寫入食譜、營養與評論
func Insert(ctx context.Context, db *gorm.DB, seeds ...SeedRecipe) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range seeds {
			s := &seeds[i]
			if err := tx.Create(&s.Recipe).Error; err != nil {
				return fmt.Errorf("failed to insert recipe %q: %w", s.Recipe.RecipeName, err)
			}
			if s.Meal != nil {
				s.Meal.MealID = s.Recipe.RecipeID
				if err := tx.Create(s.Meal).Error; err != nil {
					return fmt.Errorf("failed to insert meal %d: %w", s.Meal.MealID, err)
				}
			}
			for j := range s.Reviews {
				s.Reviews[j].RecipeID = s.Recipe.RecipeID
				if err := tx.Create(&s.Reviews[j]).Error; err != nil {
					return fmt.Errorf("failed to insert review: %w", err)
				}
			}
		}
		return nil
	})
}

// Seed 資料表為空時寫入示範資料
func Seed(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&RecipeModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seeds := DemoRecipes(time.Now().UTC())
	if err := Insert(ctx, db, seeds...); err != nil {
		return err
	}
	common.LogInfo("已寫入示範資料", zap.Int("recipes", len(seeds)))
	return nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int64) *int64       { return &i }

// DemoRecipes 示範食譜，發佈日期以 now 往前推
func DemoRecipes(now time.Time) []SeedRecipe {
	day := 24 * time.Hour
	return []SeedRecipe{
		{
			Recipe: RecipeModel{
				RecipeName:     "Low-Fat Berry Blue Frozen Dessert",
				Description:    strPtr("Make and share this Low-Fat Berry Blue Frozen Dessert recipe."),
				AuthorID:       1533,
				AuthorName:     "Dancer",
				Category:       "Frozen Desserts",
				ImageURL:       strPtr(`c("https://img.sndimg.com/food/image/upload/w_555,h_416,c_fit,fl_progressive,q_95/v1/img/recipes/38/YUeirxMLQaeE1h3v3qnM_229%20berry%20blue%20frzn%20dess.jpg", "https://img.sndimg.com/food/image/upload/w_555,h_416,c_fit,fl_progressive,q_95/v1/img/recipes/38/AFPDDHATWzQ0b1CDpDAT_255%20berry%20blue%20frzn%20dess.jpg")`),
				AverageRating:  floatPtr(4.5),
				RatingCount:    4,
				DatePublished:  now.Add(-30 * day),
				Ingredients:    strPtr(`c("blueberries", "granulated sugar", "vanilla yogurt", "lemon juice")`),
				Instructions:   strPtr(`c("Toss 2 cups berries with sugar.", "Let stand for 45 minutes, stirring occasionally.")`),
				RecipeServings: floatPtr(4),
			},
			Meal: &MealModel{
				Calories: floatPtr(170.9), Fat: floatPtr(2.5), SaturatedFat: floatPtr(1.3), Cholesterol: floatPtr(8),
				Sodium: floatPtr(29.8), Carbohydrate: floatPtr(37.1), Fiber: floatPtr(3.6), Sugar: floatPtr(30.2), Protein: floatPtr(3.2),
				PrepTimeSeconds: intPtr(14400), CookTimeSeconds: intPtr(86400), TotalTimeSeconds: intPtr(100800),
				RecipeYield: strPtr("4 cups"),
			},
			Reviews: []ReviewModel{
				{AuthorName: "gayg msft", Rating: 5, Review: "better than any you can get at the store!", DateSubmitted: now.Add(-20 * day)},
			},
		},
		{
			Recipe: RecipeModel{
				RecipeName:     "Biryani",
				Description:    strPtr("Make and share this Biryani recipe."),
				AuthorID:       1567,
				AuthorName:     "elly9812",
				Category:       "Chicken Breast",
				ImageURL:       strPtr(`"https://img.sndimg.com/food/image/upload/w_555,h_416,c_fit,fl_progressive,q_95/v1/img/recipes/39/picM9Mhnw.jpg"`),
				AverageRating:  floatPtr(3),
				RatingCount:    1,
				DatePublished:  now.Add(-25 * day),
				Ingredients:    strPtr(`c("chicken", "onion", "garlic", "rice", "salt")`),
				RecipeServings: floatPtr(6),
			},
			Meal: &MealModel{
				Calories: floatPtr(1110.7), Fat: floatPtr(58.8), Protein: floatPtr(63.4),
				PrepTimeSeconds: intPtr(14400), CookTimeSeconds: intPtr(1500), TotalTimeSeconds: intPtr(15900),
			},
		},
		{
			Recipe: RecipeModel{
				RecipeName:     "Best Lemonade",
				Description:    strPtr("This is from one of my first Good House Keeping cookbooks."),
				AuthorID:       1566,
				AuthorName:     "Stephen Little",
				Category:       "Beverages",
				ImageURL:       strPtr("character(0)"),
				AverageRating:  floatPtr(4.5),
				RatingCount:    10,
				DatePublished:  now.Add(-20 * day),
				Ingredients:    strPtr(`c("sugar", "lemons, rind of", "lemon, zest of", "fresh water", "fresh lemon juice")`),
				RecipeServings: floatPtr(4),
			},
			Meal: &MealModel{
				Calories: floatPtr(311.1), Fat: floatPtr(0.2), Sugar: floatPtr(77.2), Protein: floatPtr(0.3),
				PrepTimeSeconds: intPtr(1800), CookTimeSeconds: intPtr(300), TotalTimeSeconds: intPtr(2100),
			},
		},
		{
			Recipe: RecipeModel{
				RecipeName:    "Carina's Tofu-Vegetable Kebabs",
				AuthorID:      1586,
				AuthorName:    "Cyclopz",
				Category:      "Soy/Tofu",
				ImageURL:      strPtr(`c("https://img.sndimg.com/food/image/upload/w_555,h_416,c_fit,fl_progressive,q_95/v1/img/recipes/41/picmbLig8.jpg")`),
				AverageRating: floatPtr(4.5),
				RatingCount:   2,
				DatePublished: now.Add(-10 * day),
				Ingredients:   strPtr(`c("extra firm tofu", "eggplant", "zucchini", "mushrooms", "soy sauce")`),
			},
		},
		{
			Recipe: RecipeModel{
				RecipeName:     "Quick Tomato Soup",
				Description:    strPtr("A weeknight soup from pantry staples."),
				AuthorID:       1533,
				AuthorName:     "Dancer",
				Category:       "Soups",
				ImageURL:       strPtr(`"https://example.com/images/tomato-soup.jpg"`),
				AverageRating:  floatPtr(4),
				RatingCount:    3,
				DatePublished:  now.Add(-2 * day),
				Ingredients:    strPtr(`c("tomato", "onion", "butter", "salt", "water")`),
				RecipeServings: floatPtr(2),
			},
			Meal: &MealModel{
				Calories: floatPtr(180), Fat: floatPtr(9), Protein: floatPtr(3),
				PrepTimeSeconds: intPtr(600), CookTimeSeconds: intPtr(1200), TotalTimeSeconds: intPtr(1800),
			},
		},
	}
}
