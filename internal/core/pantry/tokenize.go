package pantry

import (
	"regexp"
	"strings"
)

var (
	quotedPattern = regexp.MustCompile(`"([^"]*)"`)
	splitPattern  = regexp.MustCompile(`[,;\n]+`)
)

// Tokenize 把食譜的食材文字切成小寫名稱，支援 c("a", "b") 與逗號或換行分隔的格式
func Tokenize(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || text == "character(0)" || strings.EqualFold(text, "NA") {
		return nil
	}
	if strings.HasPrefix(text, "c(") && strings.HasSuffix(text, ")") {
		text = text[2 : len(text)-1]
	}

	var parts []string
	if quoted := quotedPattern.FindAllStringSubmatch(text, -1); len(quoted) > 0 {
		for _, q := range quoted {
			parts = append(parts, q[1])
		}
	} else {
		parts = splitPattern.Split(text, -1)
	}

	var tokens []string
	seen := make(map[string]bool)
	for _, p := range parts {
		t := strings.ToLower(strings.Trim(strings.TrimSpace(p), `"'`))
		t = strings.TrimSpace(t)
		if t == "" || t == "na" || seen[t] {
			continue
		}
		seen[t] = true
		tokens = append(tokens, t)
	}
	return tokens
}
