package pantry

import "strings"

// Item 使用者擁有的一項食材，Quantity 保留輸入時的原始文字
type Item struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Entry 附帶解析結果的食材，列表顯示用
type Entry struct {
	Item
	Parsed Quantity `json:"parsed"`
}

// Entries 解析整個食材清單
func Entries(items []Item) []Entry {
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		out = append(out, Entry{Item: it, Parsed: ParseQuantity(it.Quantity)})
	}
	return out
}

// NewItem 由表單欄位組出食材，數量、單位與名稱皆有時存成 "數量 單位 名稱"
func NewItem(name, quantity, unit string) Item {
	name = strings.TrimSpace(name)
	quantity = strings.TrimSpace(quantity)
	unit = strings.TrimSpace(unit)

	var full string
	switch {
	case quantity != "" && unit != "" && name != "":
		full = quantity + " " + unit + " " + name
	case quantity != "" && unit != "":
		full = quantity + " " + unit
	default:
		full = quantity
	}
	return Item{Name: name, Quantity: full}
}
