package common

// MessageResponse 僅含訊息的響應
type MessageResponse struct {
	Message string `json:"message"`
}

// ActionResponse 動作結果響應，收藏等 JSON 端點使用
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Identity 已登入使用者，未登入時為 nil
type Identity struct {
	Username string `json:"username"`
}
