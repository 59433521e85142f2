package pantry

import "strings"

// Matcher 以名稱判斷食譜能否用現有食材完成，不比較數量
type Matcher struct {
	owned []string
}

// NewMatcher 由使用者食材建立比對器，空白名稱忽略
func NewMatcher(items []Item) Matcher {
	owned := make([]string, 0, len(items))
	for _, it := range items {
		name := strings.ToLower(strings.TrimSpace(it.Name))
		if name != "" {
			owned = append(owned, name)
		}
	}
	return Matcher{owned: owned}
}

// Retain 每個食材名稱都要與某項擁有的食材互為子字串；沒有可解析的食材時保留
func (m Matcher) Retain(ingredients string) bool {
	for _, token := range Tokenize(ingredients) {
		if !m.has(token) {
			return false
		}
	}
	return true
}

func (m Matcher) has(token string) bool {
	for _, name := range m.owned {
		if strings.Contains(token, name) || strings.Contains(name, token) {
			return true
		}
	}
	return false
}

// Filter 保留可完成的項目，維持原本順序
func Filter[T any](items []T, ingredientsOf func(T) string, m Matcher) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if m.Retain(ingredientsOf(it)) {
			out = append(out, it)
		}
	}
	return out
}
