package search

import "strings"

// 排序鍵
const (
	SortName        = "recipe_name"
	SortRelevance   = "relevance"
	SortRating      = "rating"
	SortRatingCount = "rating_count"
	SortNewest      = "newest"
	SortCalories    = "calories"
	SortProtein     = "protein"
	SortPrepTime    = "prep_time"
	SortCookTime    = "cook_time"
	SortTotalTime   = "total_time"
	SortServings    = "servings"
)

type sortSpec struct {
	expr     string
	dir      Direction
	nullable bool
}

// sortWhitelist 只有這裡的運算式會被寫進 ORDER BY
var sortWhitelist = map[string]sortSpec{
	SortName:        {expr: "r.recipe_name", dir: Asc},
	SortRelevance:   {expr: "r.average_rating", dir: Desc, nullable: true},
	SortRating:      {expr: "r.average_rating", dir: Desc, nullable: true},
	SortRatingCount: {expr: "r.rating_count", dir: Desc},
	SortNewest:      {expr: "r.date_published", dir: Desc},
	SortCalories:    {expr: "m.calories", dir: Asc, nullable: true},
	SortProtein:     {expr: "m.protein", dir: Desc, nullable: true},
	SortPrepTime:    {expr: "m.prep_time_seconds", dir: Asc, nullable: true},
	SortCookTime:    {expr: "m.cook_time_seconds", dir: Asc, nullable: true},
	SortTotalTime:   {expr: "m.total_time_seconds", dir: Asc, nullable: true},
	SortServings:    {expr: "r.recipe_servings", dir: Asc, nullable: true},
}

// SortKeys 回傳所有可用的排序鍵
func SortKeys() []string {
	return []string{
		SortRelevance, SortName, SortRating, SortRatingCount, SortNewest,
		SortCalories, SortProtein, SortPrepTime, SortCookTime, SortTotalTime, SortServings,
	}
}

// relevanceRank 名稱完全相同最優先，其次為開頭相符
const relevanceRank = `CASE WHEN LOWER(r.recipe_name) = @rank_exact THEN 2 WHEN LOWER(r.recipe_name) LIKE @rank_prefix ESCAPE '\' THEN 1 ELSE 0 END`

func parseSort(key, dir, fallback string) (string, Direction) {
	key = strings.TrimSpace(key)
	spec, ok := sortWhitelist[key]
	if !ok {
		key = fallback
		if spec, ok = sortWhitelist[key]; !ok {
			key = SortName
			spec = sortWhitelist[SortName]
		}
	}
	switch Direction(strings.ToUpper(strings.TrimSpace(dir))) {
	case Asc:
		return key, Asc
	case Desc:
		return key, Desc
	default:
		return key, spec.dir
	}
}

// orderBy 組出 ORDER BY 子句，附加穩定排序用的次要鍵
func orderBy(c Criteria, args map[string]any) string {
	key, dir := c.SortKey, c.SortDir
	spec, ok := sortWhitelist[key]
	if !ok {
		key, spec = SortName, sortWhitelist[SortName]
	}
	if dir != Asc && dir != Desc {
		dir = spec.dir
	}

	var terms []string
	if key == SortRelevance && c.Term != "" && c.Mode != ModeAuthor {
		term := strings.ToLower(c.Term)
		args["rank_exact"] = term
		args["rank_prefix"] = escapeLike(term) + "%"
		terms = append(terms, relevanceRank+" "+string(dir))
	}
	primary := spec.expr + " " + string(dir)
	if spec.nullable {
		primary += " NULLS LAST"
	}
	terms = append(terms, primary)

	if spec.expr != "r.recipe_name" {
		terms = append(terms, "r.recipe_name ASC")
	}
	if spec.expr != "r.date_published" {
		terms = append(terms, "r.date_published DESC")
	}
	terms = append(terms, "r.recipe_id ASC")
	return "ORDER BY " + strings.Join(terms, ", ")
}
