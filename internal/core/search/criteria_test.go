package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int) *int           { return &v }

func TestParseCriteria_Defaults(t *testing.T) {
	c := ParseCriteria(url.Values{}, ListingOptions)

	assert.Equal(t, "", c.Term)
	assert.Equal(t, ModeName, c.Mode)
	assert.Empty(t, c.Ranges)
	assert.Empty(t, c.Durations)
	assert.Nil(t, c.Ingredients)
	assert.Equal(t, SortName, c.SortKey)
	assert.Equal(t, Asc, c.SortDir)
	assert.Equal(t, 1, c.Page)
	assert.False(t, c.MatchPantry)
	assert.False(t, c.HasFilters())

	s := ParseCriteria(url.Values{}, SearchOptions)
	assert.Equal(t, SortRelevance, s.SortKey)
	assert.Equal(t, Desc, s.SortDir)
}

func TestParseCriteria_TermAndMode(t *testing.T) {
	tests := []struct {
		name     string
		values   url.Values
		wantTerm string
		wantMode Mode
	}{
		{"trimmed term", url.Values{"q": {"  soup "}}, "soup", ModeName},
		{"keywords", url.Values{"q": {"beef"}, "search_by": {"keywords"}}, "beef", ModeKeywords},
		{"author", url.Values{"q": {"1533"}, "search_by": {"author"}}, "1533", ModeAuthor},
		{"unknown mode falls back", url.Values{"q": {"x"}, "search_by": {"title"}}, "x", ModeName},
		{"blank term", url.Values{"q": {"   "}}, "", ModeName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseCriteria(tt.values, ListingOptions)
			assert.Equal(t, tt.wantTerm, c.Term)
			assert.Equal(t, tt.wantMode, c.Mode)
		})
	}
}

func TestParseCriteria_NumericRanges(t *testing.T) {
	c := ParseCriteria(url.Values{
		"min_Calories": {"100"},
		"max_Calories": {"500"},
		"max_Fat":      {"12.5"},
		"min_Sugar":    {""},
		"max_Sugar":    {"lots"},
		"min_Protein":  {"1e1"},
		"max_Sodium":   {"0x10"},
		"min_Servings": {"2"},
	}, ListingOptions)

	require.Contains(t, c.Ranges, Calories)
	assert.Equal(t, ptrFloat(100), c.Ranges[Calories].Min)
	assert.Equal(t, ptrFloat(500), c.Ranges[Calories].Max)

	require.Contains(t, c.Ranges, Fat)
	assert.Nil(t, c.Ranges[Fat].Min)
	assert.Equal(t, ptrFloat(12.5), c.Ranges[Fat].Max)

	assert.NotContains(t, c.Ranges, Sugar)
	assert.NotContains(t, c.Ranges, Sodium)
	assert.Equal(t, ptrFloat(10), c.Ranges[Protein].Min)

	require.Contains(t, c.Ranges, Servings)
	assert.Equal(t, ptrFloat(2), c.Ranges[Servings].Min)
}

func TestParseCriteria_ServingsCanonicalNameWins(t *testing.T) {
	c := ParseCriteria(url.Values{
		"min_RecipeServings": {"4"},
		"min_Servings":       {"2"},
	}, ListingOptions)

	assert.Equal(t, ptrFloat(4), c.Ranges[Servings].Min)
}

func TestParseCriteria_Durations(t *testing.T) {
	t.Run("missing minute part counts as zero", func(t *testing.T) {
		c := ParseCriteria(url.Values{"min_PrepTime_hr": {"1"}, "min_PrepTime_min": {""}}, ListingOptions)
		require.Contains(t, c.Durations, PrepTime)
		assert.Equal(t, ptrInt(60), c.Durations[PrepTime].Min)
		assert.Nil(t, c.Durations[PrepTime].Max)
	})

	t.Run("hours and minutes combine", func(t *testing.T) {
		c := ParseCriteria(url.Values{"max_CookTime_hr": {"2"}, "max_CookTime_min": {"15"}}, ListingOptions)
		assert.Equal(t, ptrInt(135), c.Durations[CookTime].Max)
	})

	t.Run("explicit zero max is applied", func(t *testing.T) {
		c := ParseCriteria(url.Values{"max_TotalTime_min": {"0"}}, ListingOptions)
		require.Contains(t, c.Durations, TotalTime)
		assert.Equal(t, ptrInt(0), c.Durations[TotalTime].Max)
	})

	t.Run("minutes above 59 are dropped", func(t *testing.T) {
		c := ParseCriteria(url.Values{"min_PrepTime_min": {"75"}}, ListingOptions)
		assert.NotContains(t, c.Durations, PrepTime)

		c = ParseCriteria(url.Values{"min_PrepTime_hr": {"1"}, "min_PrepTime_min": {"75"}}, ListingOptions)
		assert.Equal(t, ptrInt(60), c.Durations[PrepTime].Min)
	})

	t.Run("negative and non numeric parts are dropped", func(t *testing.T) {
		c := ParseCriteria(url.Values{"min_CookTime_hr": {"-1"}, "max_CookTime_min": {"ten"}}, ListingOptions)
		assert.Empty(t, c.Durations)
	})
}

func TestParseCriteria_Sort(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		opts    ParseOptions
		wantKey string
		wantDir Direction
	}{
		{"default direction of key", url.Values{"sort_by": {"rating"}}, ListingOptions, SortRating, Desc},
		{"explicit direction lower case", url.Values{"sort_by": {"rating"}, "sort_dir": {"asc"}}, ListingOptions, SortRating, Asc},
		{"unknown key uses page default", url.Values{"sort_by": {"r.recipe_id; DROP TABLE recipes"}}, SearchOptions, SortRelevance, Desc},
		{"unknown direction uses key default", url.Values{"sort_by": {"calories"}, "sort_dir": {"sideways"}}, ListingOptions, SortCalories, Asc},
		{"bad page default falls back to name", url.Values{}, ParseOptions{DefaultSort: "nope"}, SortName, Asc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseCriteria(tt.values, tt.opts)
			assert.Equal(t, tt.wantKey, c.SortKey)
			assert.Equal(t, tt.wantDir, c.SortDir)
		})
	}
}

func TestParseCriteria_Page(t *testing.T) {
	for raw, want := range map[string]int{
		"":      1,
		"3":     3,
		"0":     1,
		"-2":    1,
		"abc":   1,
		"2.5":   1,
		" 7 ":   7,
		"999":   999,
	} {
		c := ParseCriteria(url.Values{"page": {raw}}, ListingOptions)
		assert.Equal(t, want, c.Page, "page %q", raw)
	}
}

func TestParseCriteria_Ingredients(t *testing.T) {
	c := ParseCriteria(url.Values{
		"ingredients": {"Flour", "egg", "Olive Oil", "egg", "dragon fruit", "salt'; --", ""},
	}, ListingOptions)

	assert.Equal(t, []string{"egg", "olive oil"}, c.Ingredients)
}

func TestParseCriteria_Flags(t *testing.T) {
	c := ParseCriteria(url.Values{
		"match_pantry": {"on"},
		"has_image":    {"true"},
		"category":     {" Dessert "},
	}, ListingOptions)

	assert.True(t, c.MatchPantry)
	assert.True(t, c.RequireImage)
	assert.Equal(t, "Dessert", c.Category)
	assert.True(t, c.HasFilters())
}

func TestEncodeCriteria_RoundTrip(t *testing.T) {
	inputs := []url.Values{
		{},
		{"q": {"soup"}, "search_by": {"recipe_name"}},
		{"q": {"Chef 42"}, "search_by": {"author"}, "sort_by": {"newest"}},
		{"min_Calories": {"100"}, "max_Calories": {"500.25"}, "max_Servings": {"4"}},
		{"min_PrepTime_hr": {"1"}, "max_TotalTime_min": {"0"}, "max_CookTime_hr": {"3"}, "max_CookTime_min": {"59"}},
		{"category": {"Dessert"}, "has_image": {"1"}, "ingredients": {"egg", "milk"}, "page": {"4"}},
		{"match_pantry": {"yes"}, "sort_by": {"protein"}, "sort_dir": {"ASC"}, "min_Fat": {"-1"}},
	}

	for _, opts := range []ParseOptions{ListingOptions, SearchOptions} {
		for _, in := range inputs {
			first := ParseCriteria(in, opts)
			again := ParseCriteria(EncodeCriteria(first), opts)
			assert.Equal(t, first, again, "input %v", in)
		}
	}
}

func TestCriteria_WithPage(t *testing.T) {
	c := ParseCriteria(url.Values{"q": {"pie"}, "page": {"2"}}, ListingOptions)

	next := c.WithPage(3)
	assert.Equal(t, "3", next.Get("page"))
	assert.Equal(t, "pie", next.Get("q"))
	assert.Equal(t, 2, c.Page)

	first := c.WithPage(1)
	assert.Empty(t, first.Get("page"))
}
