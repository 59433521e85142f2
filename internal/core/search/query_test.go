package search

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// whereOf 取出 WHERE 之後的條件
func whereOf(t *testing.T, q Query) string {
	t.Helper()
	parts := strings.SplitN(q.SQL, "WHERE ", 2)
	require.Len(t, parts, 2)
	w := parts[1]
	if i := strings.Index(w, "\n"); i >= 0 {
		w = w[:i]
	}
	return w
}

func TestCountQuery_NameSearch(t *testing.T) {
	c := ParseCriteria(url.Values{"q": {"soup"}, "search_by": {"recipe_name"}}, ListingOptions)
	q := CountQuery(c)

	assert.Equal(t, `r.recipe_name IS NOT NULL AND r.recipe_name <> '' AND LOWER(r.recipe_name) LIKE @term ESCAPE '\'`, whereOf(t, q))
	assert.Equal(t, map[string]any{"term": "%soup%"}, q.Args)
	assert.True(t, strings.HasPrefix(q.SQL, "SELECT COUNT(DISTINCT r.recipe_id) FROM recipes r LEFT JOIN meals m ON m.meal_id = r.recipe_id"))
	assert.NotContains(t, whereOf(t, q), "m.")
}

func TestCountQuery_CalorieBounds(t *testing.T) {
	c := ParseCriteria(url.Values{"min_Calories": {"100"}, "max_Calories": {"500"}}, ListingOptions)
	q := CountQuery(c)

	w := whereOf(t, q)
	assert.Contains(t, w, "m.calories >= @min_calories")
	assert.Contains(t, w, "m.calories <= @max_calories")
	assert.Equal(t, 100.0, q.Args["min_calories"])
	assert.Equal(t, 500.0, q.Args["max_calories"])
}

func TestCountQuery_KeywordsAndAuthor(t *testing.T) {
	t.Run("keywords span name description and ingredients", func(t *testing.T) {
		q := CountQuery(ParseCriteria(url.Values{"q": {"Beef"}, "search_by": {"keywords"}}, ListingOptions))
		w := whereOf(t, q)
		assert.Contains(t, w, "LOWER(r.recipe_name) LIKE @term")
		assert.Contains(t, w, "LOWER(r.description) LIKE @term")
		assert.Contains(t, w, "LOWER(r.ingredients) LIKE @term")
		assert.Equal(t, "%beef%", q.Args["term"])
	})

	t.Run("author by name is exact", func(t *testing.T) {
		q := CountQuery(ParseCriteria(url.Values{"q": {"Dancer"}, "search_by": {"author"}}, ListingOptions))
		w := whereOf(t, q)
		assert.Contains(t, w, "r.author_name = @author")
		assert.NotContains(t, w, "LIKE")
		assert.Equal(t, "Dancer", q.Args["author"])
	})

	t.Run("author by id", func(t *testing.T) {
		q := CountQuery(ParseCriteria(url.Values{"q": {"1533"}, "search_by": {"author"}}, ListingOptions))
		assert.Contains(t, whereOf(t, q), "r.author_id = @author_id")
		assert.Equal(t, int64(1533), q.Args["author_id"])
	})
}

func TestCountQuery_Durations(t *testing.T) {
	q := CountQuery(ParseCriteria(url.Values{"min_PrepTime_hr": {"1"}, "max_TotalTime_min": {"0"}}, ListingOptions))
	w := whereOf(t, q)

	assert.Contains(t, w, "(m.prep_time_seconds / 60.0) >= @min_prep_time")
	assert.Contains(t, w, "(m.total_time_seconds / 60.0) <= @max_total_time")
	assert.Equal(t, 60, q.Args["min_prep_time"])
	assert.Equal(t, 0, q.Args["max_total_time"])
}

func TestCountQuery_CategoryImageIngredients(t *testing.T) {
	q := CountQuery(ParseCriteria(url.Values{
		"category":    {"Dessert"},
		"has_image":   {"1"},
		"ingredients": {"egg", "milk"},
	}, ListingOptions))
	w := whereOf(t, q)

	assert.Contains(t, w, "r.category = @category")
	assert.Contains(t, w, "r.image_url <> 'character(0)'")
	assert.Contains(t, w, "LOWER(r.ingredients) LIKE @ingredient_0")
	assert.Contains(t, w, "LOWER(r.ingredients) LIKE @ingredient_1")
	assert.Equal(t, "%egg%", q.Args["ingredient_0"])
	assert.Equal(t, "%milk%", q.Args["ingredient_1"])
}

func TestQuery_ValuesNeverInSQL(t *testing.T) {
	hostile := "x' OR '1'='1'; DROP TABLE users; --"
	for _, mode := range []string{"recipe_name", "keywords", "author"} {
		c := ParseCriteria(url.Values{
			"q":         {hostile},
			"search_by": {mode},
			"category":  {hostile},
			"sort_by":   {"relevance"},
		}, SearchOptions)

		data := DataQuery(c, 20, 0)
		count := CountQuery(c)
		assert.NotContains(t, data.SQL, "DROP TABLE", mode)
		assert.NotContains(t, count.SQL, "DROP TABLE", mode)
	}
}

func TestQuery_StableShape(t *testing.T) {
	a := ParseCriteria(url.Values{"q": {"pie"}, "min_Fat": {"1"}, "sort_by": {"rating"}}, ListingOptions)
	b := ParseCriteria(url.Values{"q": {"stew"}, "min_Fat": {"9"}, "sort_by": {"rating"}}, ListingOptions)

	assert.Equal(t, DataQuery(a, 20, 0).SQL, DataQuery(b, 20, 40).SQL)
	assert.Equal(t, CountQuery(a).SQL, CountQuery(b).SQL)
}

func TestQuery_EscapesLikeWildcards(t *testing.T) {
	q := CountQuery(ParseCriteria(url.Values{"q": {"100%_sure\\"}}, ListingOptions))
	assert.Equal(t, `%100\%\_sure\\%`, q.Args["term"])
}

func TestDataQuery_OrderAndWindow(t *testing.T) {
	t.Run("name sort adds date then id tie breakers", func(t *testing.T) {
		q := DataQuery(ParseCriteria(url.Values{}, ListingOptions), 20, 40)
		assert.Contains(t, q.SQL, "ORDER BY r.recipe_name ASC, r.date_published DESC, r.recipe_id ASC")
		assert.Equal(t, 20, q.Args["limit"])
		assert.Equal(t, 40, q.Args["offset"])
	})

	t.Run("other keys add both tie breakers", func(t *testing.T) {
		q := DataQuery(ParseCriteria(url.Values{"sort_by": {"calories"}, "sort_dir": {"DESC"}}, ListingOptions), 20, 0)
		assert.Contains(t, q.SQL, "ORDER BY m.calories DESC NULLS LAST, r.recipe_name ASC, r.date_published DESC, r.recipe_id ASC")
	})

	t.Run("newest skips date tie breaker", func(t *testing.T) {
		q := DataQuery(ParseCriteria(url.Values{"sort_by": {"newest"}}, ListingOptions), 20, 0)
		assert.Contains(t, q.SQL, "ORDER BY r.date_published DESC, r.recipe_name ASC, r.recipe_id ASC")
	})

	t.Run("relevance ranks name matches first", func(t *testing.T) {
		q := DataQuery(ParseCriteria(url.Values{"q": {"Pie"}}, SearchOptions), 20, 0)
		assert.Contains(t, q.SQL, "ORDER BY CASE WHEN LOWER(r.recipe_name) = @rank_exact")
		assert.Equal(t, "pie", q.Args["rank_exact"])
		assert.Equal(t, "pie%", q.Args["rank_prefix"])
	})

	t.Run("group by precedes order and limit", func(t *testing.T) {
		q := DataQuery(ParseCriteria(url.Values{}, ListingOptions), 20, 0)
		group := strings.Index(q.SQL, "GROUP BY r.recipe_id, m.meal_id")
		order := strings.Index(q.SQL, "ORDER BY")
		limit := strings.Index(q.SQL, "LIMIT @limit OFFSET @offset")
		require.True(t, group > 0)
		assert.Less(t, group, order)
		assert.Less(t, order, limit)
	})
}

func TestCompose(t *testing.T) {
	c := ParseCriteria(url.Values{"q": {"soup"}}, ListingOptions)
	p := Paginate(45, 3, 20)

	count, data := Compose(c, p)
	assert.Equal(t, CountQuery(c), count)
	assert.Equal(t, 20, data.Args["limit"])
	assert.Equal(t, 40, data.Args["offset"])
}
