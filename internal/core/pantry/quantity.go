package pantry

import (
	"regexp"
	"strconv"
	"strings"
)

// Quantity 解析後的數量，Unit 以字面比較，沒有單位換算
type Quantity struct {
	Amount    float64 `json:"amount"`
	Unit      string  `json:"unit,omitempty"`
	Unbounded bool    `json:"unbounded"`
}

// 開頭數量：帶分數、分數、小數或整數，後面可接一個單位
var quantityPattern = regexp.MustCompile(`^\s*(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?|\.\d+)(?:\s*([a-zA-Z]+\.?))?`)

// ParseQuantity 解析 "2 cups"、"1/2 tsp"、"1 1/2 cup" 等字串，無法解析時視為不限量
func ParseQuantity(s string) Quantity {
	m := quantityPattern.FindStringSubmatch(s)
	if m == nil {
		return Quantity{Unbounded: true}
	}
	amount, ok := parseAmount(m[1])
	if !ok {
		return Quantity{Unbounded: true}
	}
	return Quantity{
		Amount: amount,
		Unit:   strings.ToLower(strings.TrimSuffix(m[2], ".")),
	}
}

func parseAmount(s string) (float64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 2 {
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(fields[1])
		if !ok {
			return 0, false
		}
		return whole + frac, true
	}
	if strings.Contains(s, "/") {
		return parseFraction(s)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseFraction(s string) (float64, bool) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}
