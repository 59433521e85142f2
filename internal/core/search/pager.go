package search

// DefaultPageSize 每頁筆數預設值
const DefaultPageSize = 20

// Page 分頁結果
type Page struct {
	Number       int   `json:"page"`
	Size         int   `json:"page_size"`
	TotalResults int64 `json:"total_results"`
	TotalPages   int   `json:"total_pages"`
	Offset       int   `json:"-"`
}

// Paginate 計算總頁數並把請求頁碼夾在 [1, TotalPages]
func Paginate(total int64, requested, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	page := requested
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	return Page{
		Number:       page,
		Size:         size,
		TotalResults: total,
		TotalPages:   pages,
		Offset:       (page - 1) * size,
	}
}

// Slice 依分頁取出子切片，用於記憶體中已過濾的結果
func Slice[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Size
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}
