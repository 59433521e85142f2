package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Query SQL 樣板與具名參數，值只出現在 Args
type Query struct {
	SQL  string
	Args map[string]any
}

const (
	// SelectColumns 食譜與營養欄位，資料查詢共用
	SelectColumns = `r.recipe_id, r.recipe_name, r.description, r.author_id, r.author_name, r.category, r.image_url,
r.average_rating, r.rating_count, r.date_published, r.ingredients, r.ingredient_quantities, r.instructions, r.recipe_servings,
m.meal_id, m.calories, m.fat, m.saturated_fat, m.cholesterol, m.sodium, m.carbohydrate, m.fiber, m.sugar, m.protein,
m.prep_time_seconds, m.cook_time_seconds, m.total_time_seconds, m.recipe_yield`

	// FromClause 營養表一律以 LEFT JOIN 接上
	FromClause = "FROM recipes r LEFT JOIN meals m ON m.meal_id = r.recipe_id"

	nameGuard  = "r.recipe_name IS NOT NULL AND r.recipe_name <> ''"
	imageGuard = "r.image_url IS NOT NULL AND r.image_url <> '' AND r.image_url <> 'character(0)'"

	groupClause = "GROUP BY r.recipe_id, m.meal_id"
)

// where 組出 WHERE 子句與對應參數，子句順序固定
func where(c Criteria) (string, map[string]any) {
	args := make(map[string]any)
	clauses := []string{nameGuard}

	if c.Term != "" {
		switch c.Mode {
		case ModeAuthor:
			args["author"] = c.Term
			if id, err := strconv.ParseInt(c.Term, 10, 64); err == nil {
				args["author_id"] = id
				clauses = append(clauses, "(r.author_name = @author OR r.author_id = @author_id)")
			} else {
				clauses = append(clauses, "r.author_name = @author")
			}
		case ModeKeywords:
			args["term"] = "%" + escapeLike(strings.ToLower(c.Term)) + "%"
			clauses = append(clauses, `(LOWER(r.recipe_name) LIKE @term ESCAPE '\' OR LOWER(r.description) LIKE @term ESCAPE '\' OR LOWER(r.ingredients) LIKE @term ESCAPE '\')`)
		default:
			args["term"] = "%" + escapeLike(strings.ToLower(c.Term)) + "%"
			clauses = append(clauses, `LOWER(r.recipe_name) LIKE @term ESCAPE '\'`)
		}
	}

	for _, f := range NumericFields {
		r, ok := c.Ranges[f]
		if !ok {
			continue
		}
		spec := numericColumns[f]
		if r.Min != nil {
			name := "min_" + spec.param
			args[name] = *r.Min
			clauses = append(clauses, fmt.Sprintf("%s >= @%s", spec.column, name))
		}
		if r.Max != nil {
			name := "max_" + spec.param
			args[name] = *r.Max
			clauses = append(clauses, fmt.Sprintf("%s <= @%s", spec.column, name))
		}
	}

	for _, f := range DurationFields {
		r, ok := c.Durations[f]
		if !ok {
			continue
		}
		spec := durationColumns[f]
		if r.Min != nil {
			name := "min_" + spec.param
			args[name] = *r.Min
			clauses = append(clauses, fmt.Sprintf("(%s / 60.0) >= @%s", spec.column, name))
		}
		if r.Max != nil {
			name := "max_" + spec.param
			args[name] = *r.Max
			clauses = append(clauses, fmt.Sprintf("(%s / 60.0) <= @%s", spec.column, name))
		}
	}

	if c.Category != "" {
		args["category"] = c.Category
		clauses = append(clauses, "r.category = @category")
	}
	if c.RequireImage {
		clauses = append(clauses, imageGuard)
	}
	for i, ing := range c.Ingredients {
		name := fmt.Sprintf("ingredient_%d", i)
		args[name] = "%" + escapeLike(strings.ToLower(ing)) + "%"
		clauses = append(clauses, fmt.Sprintf(`LOWER(r.ingredients) LIKE @%s ESCAPE '\'`, name))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// CountQuery 與資料查詢使用相同條件的計數查詢
func CountQuery(c Criteria) Query {
	w, args := where(c)
	return Query{
		SQL:  "SELECT COUNT(DISTINCT r.recipe_id) " + FromClause + " " + w,
		Args: args,
	}
}

// DataQuery 取出一個視窗的資料列
func DataQuery(c Criteria, limit, offset int) Query {
	w, args := where(c)
	order := orderBy(c, args)
	args["limit"] = limit
	args["offset"] = offset
	return Query{
		SQL: strings.Join([]string{
			"SELECT " + SelectColumns,
			FromClause,
			w,
			groupClause,
			order,
			"LIMIT @limit OFFSET @offset",
		}, "\n"),
		Args: args,
	}
}

// Compose 依分頁結果產生計數與資料查詢
func Compose(c Criteria, p Page) (count Query, data Query) {
	return CountQuery(c), DataQuery(c, p.Size, p.Offset)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 跳脫 LIKE 萬用字元
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
