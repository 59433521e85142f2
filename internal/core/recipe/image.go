package recipe

import (
	"net/url"
	"regexp"
	"strings"
)

var vectorImagePattern = regexp.MustCompile(`^c?\("([^"]+)"`)

// FirstImageURL 從儲存的圖片字串取出第一個有效網址，找不到時回傳空字串
func FirstImageURL(raw string) string {
	if raw == "" || raw == "character(0)" {
		return ""
	}
	if u := strings.Trim(raw, ` "`); isHTTPURL(u) {
		return u
	}
	if m := vectorImagePattern.FindStringSubmatch(raw); m != nil && isHTTPURL(m[1]) {
		return m[1]
	}
	return ""
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" && !strings.ContainsAny(s, " \"")
}
