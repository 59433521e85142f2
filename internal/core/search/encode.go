package search

import (
	"net/url"
	"strconv"
)

// EncodeCriteria 轉回查詢參數，ParseCriteria 可還原出相同條件
func EncodeCriteria(c Criteria) url.Values {
	v := url.Values{}
	if c.Term != "" {
		v.Set("q", c.Term)
	}
	if c.Mode != "" {
		v.Set("search_by", string(c.Mode))
	}

	for _, f := range NumericFields {
		r, ok := c.Ranges[f]
		if !ok {
			continue
		}
		if r.Min != nil {
			v.Set("min_"+string(f), formatNumber(*r.Min))
		}
		if r.Max != nil {
			v.Set("max_"+string(f), formatNumber(*r.Max))
		}
	}

	for _, f := range DurationFields {
		r, ok := c.Durations[f]
		if !ok {
			continue
		}
		if r.Min != nil {
			setMinutes(v, "min_"+string(f), *r.Min)
		}
		if r.Max != nil {
			setMinutes(v, "max_"+string(f), *r.Max)
		}
	}

	if c.Category != "" {
		v.Set("category", c.Category)
	}
	if c.RequireImage {
		v.Set("has_image", "1")
	}
	for _, ing := range c.Ingredients {
		v.Add("ingredients", ing)
	}
	if c.SortKey != "" {
		v.Set("sort_by", c.SortKey)
	}
	if c.SortDir != "" {
		v.Set("sort_dir", string(c.SortDir))
	}
	if c.Page > 1 {
		v.Set("page", strconv.Itoa(c.Page))
	}
	if c.MatchPantry {
		v.Set("match_pantry", "1")
	}
	return v
}

// WithPage 複製條件並換成指定頁碼，產生分頁連結用
func (c Criteria) WithPage(page int) url.Values {
	c.Page = page
	return EncodeCriteria(c)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func setMinutes(v url.Values, key string, total int) {
	if total < 0 {
		total = 0
	}
	v.Set(key+"_hr", strconv.Itoa(total/60))
	v.Set(key+"_min", strconv.Itoa(total%60))
}
