package persistence_test

import (
	"context"
	"net/url"
	"testing"
	"time"

	"recipe-browser/internal/core/search"
	"recipe-browser/internal/infrastructure/persistence"
	"recipe-browser/internal/infrastructure/persistence/persistencetest"
	"recipe-browser/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type RecipeRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo *persistence.RecipeRepository
	ids  []int64
	ctx  context.Context
}

func (s *RecipeRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = persistencetest.NewDB(s.T())
	s.repo = persistence.NewRecipeRepository(s.db)
	s.ids = persistencetest.Insert(s.T(), s.db,
		persistencetest.Recipe{
			Name: "Tomato Soup", Author: "Dancer", AuthorID: 1533, Category: "Soups",
			Image: `"https://example.com/soup.jpg"`, Rating: persistencetest.Float(4),
			Ingredients: `c("tomato", "onion", "salt")`,
			Meal: &persistence.MealModel{
				Calories: persistencetest.Float(100), Protein: persistencetest.Float(3),
				PrepTimeSeconds: persistencetest.Seconds(600), TotalTimeSeconds: persistencetest.Seconds(1800),
			},
		},
		persistencetest.Recipe{
			Name: "Beef Stew", Author: "elly9812", AuthorID: 1567, Category: "Stews",
			Rating:      persistencetest.Float(5),
			Ingredients: `c("beef", "potato", "carrot")`,
			Meal: &persistence.MealModel{
				Calories: persistencetest.Float(500), Protein: persistencetest.Float(40),
				PrepTimeSeconds: persistencetest.Seconds(3600), TotalTimeSeconds: persistencetest.Seconds(10800),
			},
		},
		persistencetest.Recipe{
			Name: "100%_Lemonade", Author: "Stephen Little", AuthorID: 1566, Category: "Beverages",
			Image: "character(0)", Ingredients: `c("lemon", "sugar", "water")`,
		},
		persistencetest.Recipe{
			Name: "Apple Pie", Author: "Dancer", AuthorID: 1533, Category: "Pies",
			Image: `c("https://example.com/pie.jpg")`, Rating: persistencetest.Float(4),
			Ingredients: `c("apple", "flour", "butter", "sugar")`,
			Meal:        &persistence.MealModel{Calories: persistencetest.Float(400)},
		},
	)
}

func (s *RecipeRepositoryTestSuite) find(values url.Values) ([]string, int64) {
	c := search.ParseCriteria(values, search.ListingOptions)
	total, err := s.repo.Count(s.ctx, search.CountQuery(c))
	s.Require().NoError(err)
	rows, err := s.repo.Find(s.ctx, search.DataQuery(c, 50, 0))
	s.Require().NoError(err)
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
	}
	return names, total
}

func (s *RecipeRepositoryTestSuite) TestEmptyCriteriaOrderedByName() {
	names, total := s.find(url.Values{})
	s.Equal(int64(4), total)
	s.Equal([]string{"100%_Lemonade", "Apple Pie", "Beef Stew", "Tomato Soup"}, names)
}

func (s *RecipeRepositoryTestSuite) TestBoundsAreInclusive() {
	names, total := s.find(url.Values{"min_Calories": {"100"}, "max_Calories": {"400"}})
	s.Equal(int64(2), total)
	s.Equal([]string{"Apple Pie", "Tomato Soup"}, names)
}

func (s *RecipeRepositoryTestSuite) TestNumericBoundExcludesMissingNutrition() {
	names, _ := s.find(url.Values{"max_Calories": {"10000"}})
	s.NotContains(names, "100%_Lemonade")
}

func (s *RecipeRepositoryTestSuite) TestDurationFilterInMinutes() {
	names, total := s.find(url.Values{"max_TotalTime_hr": {"1"}})
	s.Equal(int64(1), total)
	s.Equal([]string{"Tomato Soup"}, names)
}

func (s *RecipeRepositoryTestSuite) TestWildcardsAreLiteral() {
	names, total := s.find(url.Values{"q": {"%_"}})
	s.Equal(int64(1), total)
	s.Equal([]string{"100%_Lemonade"}, names)

	_, total = s.find(url.Values{"q": {"_"}})
	s.Equal(int64(1), total)
}

func (s *RecipeRepositoryTestSuite) TestInjectionTextMatchesNothing() {
	names, total := s.find(url.Values{"q": {"'; DROP TABLE recipes; --"}})
	s.Zero(total)
	s.Empty(names)

	_, total = s.find(url.Values{})
	s.Equal(int64(4), total)
}

func (s *RecipeRepositoryTestSuite) TestAuthorMode() {
	names, _ := s.find(url.Values{"q": {"Dancer"}, "search_by": {"author"}})
	s.Equal([]string{"Apple Pie", "Tomato Soup"}, names)

	names, _ = s.find(url.Values{"q": {"1567"}, "search_by": {"author"}})
	s.Equal([]string{"Beef Stew"}, names)
}

func (s *RecipeRepositoryTestSuite) TestKeywordsSearchIngredients() {
	names, _ := s.find(url.Values{"q": {"POTATO"}, "search_by": {"keywords"}})
	s.Equal([]string{"Beef Stew"}, names)
}

func (s *RecipeRepositoryTestSuite) TestRequireImageSkipsPlaceholder() {
	names, total := s.find(url.Values{"has_image": {"1"}})
	s.Equal(int64(2), total)
	s.Equal([]string{"Apple Pie", "Tomato Soup"}, names)
}

func (s *RecipeRepositoryTestSuite) TestSortNullsLast() {
	names, _ := s.find(url.Values{"sort_by": {"calories"}, "sort_dir": {"DESC"}})
	s.Equal([]string{"Beef Stew", "Apple Pie", "Tomato Soup", "100%_Lemonade"}, names)

	names, _ = s.find(url.Values{"sort_by": {"rating"}})
	s.Equal("Beef Stew", names[0])
	s.Equal("100%_Lemonade", names[len(names)-1])
}

func (s *RecipeRepositoryTestSuite) TestPagingWindow() {
	c := search.ParseCriteria(url.Values{}, search.ListingOptions)
	first, err := s.repo.Find(s.ctx, search.DataQuery(c, 3, 0))
	s.Require().NoError(err)
	second, err := s.repo.Find(s.ctx, search.DataQuery(c, 3, 3))
	s.Require().NoError(err)
	s.Len(first, 3)
	s.Require().Len(second, 1)
	s.Equal("Tomato Soup", second[0].Name)
}

func (s *RecipeRepositoryTestSuite) TestByID() {
	r, err := s.repo.ByID(s.ctx, s.ids[0])
	s.Require().NoError(err)
	s.Equal("Tomato Soup", r.Name)
	s.Equal("Dancer", r.AuthorName)
	s.Require().NotNil(r.Nutrition)
	s.Equal(10*time.Minute, r.Nutrition.PrepTime)
	s.Equal(100.0, *r.Nutrition.Calories)

	lemonade, err := s.repo.ByID(s.ctx, s.ids[2])
	s.Require().NoError(err)
	s.Nil(lemonade.Nutrition)

	_, err = s.repo.ByID(s.ctx, 99999)
	s.ErrorIs(err, common.ErrRecipeNotFound)
}

func (s *RecipeRepositoryTestSuite) TestByIDs() {
	rows, err := s.repo.ByIDs(s.ctx, []int64{s.ids[0], s.ids[3], 99999})
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Apple Pie", rows[0].Name)
	s.Equal("Tomato Soup", rows[1].Name)

	rows, err = s.repo.ByIDs(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *RecipeRepositoryTestSuite) TestReviewsNewestFirst() {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.db.Create(&[]persistence.ReviewModel{
		{RecipeID: s.ids[0], AuthorName: "a", Rating: 3, Review: "older", DateSubmitted: now.Add(-48 * time.Hour)},
		{RecipeID: s.ids[0], AuthorName: "b", Rating: 5, Review: "newer", DateSubmitted: now},
		{RecipeID: s.ids[1], AuthorName: "c", Rating: 4, Review: "other", DateSubmitted: now},
	}).Error)

	reviews, err := s.repo.Reviews(s.ctx, s.ids[0])
	s.Require().NoError(err)
	s.Require().Len(reviews, 2)
	s.Equal("newer", reviews[0].Text)
	s.Equal("older", reviews[1].Text)

	reviews, err = s.repo.Reviews(s.ctx, s.ids[2])
	s.Require().NoError(err)
	s.Empty(reviews)
}

func TestRecipeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeRepositoryTestSuite))
}

func TestSeed(t *testing.T) {
	db := persistencetest.NewDB(t)
	ctx := context.Background()

	require.NoError(t, persistence.Seed(ctx, db))
	var first int64
	require.NoError(t, db.Model(&persistence.RecipeModel{}).Count(&first).Error)
	assert.Equal(t, int64(len(persistence.DemoRecipes(time.Now()))), first)

	require.NoError(t, persistence.Seed(ctx, db))
	var second int64
	require.NoError(t, db.Model(&persistence.RecipeModel{}).Count(&second).Error)
	assert.Equal(t, first, second)
}

func TestPing(t *testing.T) {
	db := persistencetest.NewDB(t)
	assert.NoError(t, persistence.Ping(context.Background(), db))
}
