// Package search 將查詢參數整理成篩選條件，並組出參數化的計數與分頁查詢。
package search

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"recipe-browser/internal/core/pantry"
)

// Mode 文字搜尋模式
type Mode string

const (
	ModeName     Mode = "recipe_name"
	ModeKeywords Mode = "keywords"
	ModeAuthor   Mode = "author"
)

// Direction 排序方向
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Range 數值範圍，兩端皆可省略且互相獨立
type Range struct {
	Min *float64
	Max *float64
}

// IsZero 兩端都未設定
func (r Range) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// MinuteRange 以總分鐘表示的時間範圍
type MinuteRange struct {
	Min *int
	Max *int
}

// IsZero 兩端都未設定
func (r MinuteRange) IsZero() bool {
	return r.Min == nil && r.Max == nil
}

// Criteria 單次請求的搜尋條件
type Criteria struct {
	Term         string
	Mode         Mode
	Ranges       map[NumericField]Range
	Durations    map[DurationField]MinuteRange
	Category     string
	RequireImage bool
	Ingredients  []string
	SortKey      string
	SortDir      Direction
	Page         int
	MatchPantry  bool
}

// ParseOptions 依頁面不同的解析設定
type ParseOptions struct {
	DefaultSort string
}

// 各頁面的預設排序
var (
	ListingOptions = ParseOptions{DefaultSort: SortName}
	SearchOptions  = ParseOptions{DefaultSort: SortRelevance}
)

var (
	numberPattern     = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	digitsPattern     = regexp.MustCompile(`^\d{1,9}$`)
	ingredientPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)
)

// ParseCriteria 解析查詢參數，無效或空白的值直接略過
func ParseCriteria(values url.Values, opts ParseOptions) Criteria {
	c := Criteria{
		Term:      strings.TrimSpace(values.Get("q")),
		Mode:      parseMode(values.Get("search_by")),
		Ranges:    make(map[NumericField]Range),
		Durations: make(map[DurationField]MinuteRange),
		Category:  strings.TrimSpace(values.Get("category")),
		Page:      parsePage(values.Get("page")),
	}

	for _, f := range NumericFields {
		r := Range{
			Min: firstNumber(values, "min_", f),
			Max: firstNumber(values, "max_", f),
		}
		if !r.IsZero() {
			c.Ranges[f] = r
		}
	}

	for _, f := range DurationFields {
		r := MinuteRange{
			Min: parseMinutes(values, "min_"+string(f)),
			Max: parseMinutes(values, "max_"+string(f)),
		}
		if !r.IsZero() {
			c.Durations[f] = r
		}
	}

	c.RequireImage = parseBool(values.Get("has_image"))
	c.MatchPantry = parseBool(values.Get("match_pantry"))
	c.Ingredients = parseIngredients(values["ingredients"])

	c.SortKey, c.SortDir = parseSort(values.Get("sort_by"), values.Get("sort_dir"), opts.DefaultSort)
	return c
}

// HasFilters 是否有任何會改變結果集合的條件
func (c Criteria) HasFilters() bool {
	return c.Term != "" || len(c.Ranges) > 0 || len(c.Durations) > 0 ||
		c.Category != "" || c.RequireImage || len(c.Ingredients) > 0
}

func parseMode(v string) Mode {
	switch Mode(strings.TrimSpace(v)) {
	case ModeKeywords:
		return ModeKeywords
	case ModeAuthor:
		return ModeAuthor
	default:
		return ModeName
	}
}

func parsePage(v string) int {
	v = strings.TrimSpace(v)
	if !digitsPattern.MatchString(v) {
		return 1
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parseNumber(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" || !numberPattern.MatchString(v) {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &n
}

// firstNumber 讀取 <prefix><field>，份量欄位另外接受舊名稱
func firstNumber(values url.Values, prefix string, f NumericField) *float64 {
	if n := parseNumber(values.Get(prefix + string(f))); n != nil {
		return n
	}
	if f == Servings {
		return parseNumber(values.Get(prefix + servingsAlias))
	}
	return nil
}

// parseMinutes 合併 _hr 與 _min 子欄位，任一有效即套用
func parseMinutes(values url.Values, key string) *int {
	hours, hasHours := parseBounded(values.Get(key+"_hr"), -1)
	minutes, hasMinutes := parseBounded(values.Get(key+"_min"), 59)
	if !hasHours && !hasMinutes {
		return nil
	}
	total := hours*60 + minutes
	return &total
}

// parseBounded 解析非負整數，max 小於 0 表示不設上限
func parseBounded(v string, max int) (int, bool) {
	v = strings.TrimSpace(v)
	if !digitsPattern.MatchString(v) {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	if max >= 0 && n > max {
		return 0, false
	}
	return n, true
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// parseIngredients 只接受常用食材清單中的名稱，回傳小寫且不重複
func parseIngredients(raw []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ing := range raw {
		ing = strings.TrimSpace(ing)
		if ing == "" || !ingredientPattern.MatchString(ing) {
			continue
		}
		name := strings.ToLower(ing)
		if !pantry.IsCommonIngredient(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
