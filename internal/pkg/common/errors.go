package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Is 錯誤代碼相同即視為同一錯誤
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	return ok && t.Code == e.Code
}

// Wrap 以預定義錯誤為模板包裝原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return NewError(e.Code, e.Message, e.Status, err)
}

// Response 轉為 API 錯誤響應
func (e *CustomError) Response(debug bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if debug && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// AsCustomError 取出錯誤鏈中的 CustomError，找不到時回傳 ErrInternalError
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	return ErrInternalError.Wrap(err)
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeUnauthorized    = "UNAUTHORIZED"      // 401
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// 服務器錯誤 (5xx)
	ErrCodeInternalError      = "INTERNAL_ERROR"      // 500
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE" // 503
)

// 預定義錯誤
var (
	// 客戶端錯誤
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "Invalid request.", http.StatusBadRequest, nil)
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "Please sign in.", http.StatusUnauthorized, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "Not found.", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "Request timeout.", http.StatusRequestTimeout, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests.", http.StatusTooManyRequests, nil)

	// 服務器錯誤
	ErrInternalError      = NewError(ErrCodeInternalError, "Server error. Please try again.", http.StatusInternalServerError, nil)
	ErrServiceUnavailable = NewError(ErrCodeServiceUnavailable, "Service unavailable.", http.StatusServiceUnavailable, nil)

	// 業務錯誤
	ErrRecipeNotFound     = NewError("RECIPE_NOT_FOUND", "Recipe not found.", http.StatusNotFound, nil)
	ErrInvalidRecipe      = NewError("INVALID_RECIPE_ID", "Invalid recipe ID.", http.StatusBadRequest, nil)
	ErrSearchFailed       = NewError("SEARCH_FAILED", "An error occurred while performing the search.", http.StatusInternalServerError, nil)
	ErrUserNotFound       = NewError("USER_NOT_FOUND", "User not found.", http.StatusNotFound, nil)
	ErrInvalidCredentials = NewError("INVALID_CREDENTIALS", "Invalid username or password.", http.StatusUnauthorized, nil)
	ErrUsernameTaken      = NewError("USERNAME_TAKEN", "Username already exists.", http.StatusConflict, nil)
	ErrEmailTaken         = NewError("EMAIL_TAKEN", "Email already in use.", http.StatusConflict, nil)
	ErrInvalidAction      = NewError("INVALID_ACTION", "Invalid request.", http.StatusBadRequest, nil)
	ErrPantryIndex        = NewError("INVALID_PANTRY_INDEX", "Invalid pantry item.", http.StatusBadRequest, nil)
	ErrCacheFull          = NewError("CACHE_FULL", "Cache is full.", http.StatusServiceUnavailable, nil)
	ErrCacheDisabled      = NewError("CACHE_DISABLED", "Cache is disabled.", http.StatusServiceUnavailable, nil)
	ErrCacheMiss          = NewError("CACHE_MISS", "Cache miss.", http.StatusNotFound, nil)
	ErrSessionNotFound    = NewError("SESSION_NOT_FOUND", "Please sign in.", http.StatusUnauthorized, nil)
)
