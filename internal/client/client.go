// Package client 是食譜 API 的 HTTP 用戶端，登入 cookie 由 resty 的 cookie jar 保存。
package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"recipe-browser/internal/core/pantry"
	"recipe-browser/internal/core/recipe"

	"github.com/go-resty/resty/v2"
)

// SearchPage 一頁搜尋結果
type SearchPage struct {
	Results      []recipe.Recipe `json:"results"`
	TotalResults int64           `json:"total_results"`
	TotalPages   int             `json:"total_pages"`
	Page         int             `json:"page"`
	PageSize     int             `json:"page_size"`
	Criteria     string          `json:"criteria"`
	Favorites    []int64         `json:"favorites,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// RecipeDetail 詳細頁
type RecipeDetail struct {
	recipe.Detail
	IsFavorite bool `json:"is_favorite"`
}

// Ingredients 可選食材與單位
type Ingredients struct {
	Ingredients []string `json:"ingredients"`
	Units       []string `json:"units"`
}

// APIError 非 2xx 響應
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type messageBody struct {
	Message string `json:"message"`
}

type actionBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type recipeList struct {
	Results []recipe.Recipe `json:"results"`
}

type pantryBody struct {
	Items []pantry.Entry `json:"items"`
}

// Client 食譜 API 用戶端
type Client struct {
	http *resty.Client
}

// New 創建用戶端
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetError(&APIError{})
	return &Client{http: c}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetResult(out).
		Get(path)
	return check(resp, err)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		Post(path)
	return check(resp, err)
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	apiErr, ok := resp.Error().(*APIError)
	if !ok || apiErr == nil {
		apiErr = &APIError{}
	}
	apiErr.Status = resp.StatusCode()
	if apiErr.Message == "" {
		apiErr.Message = apiErr.Detail
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status()
	}
	return apiErr
}

// Search 進階搜尋
func (c *Client) Search(ctx context.Context, query url.Values) (*SearchPage, error) {
	var page SearchPage
	if err := c.get(ctx, "/api/v1/recipes", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// All 全部食譜列表
func (c *Client) All(ctx context.Context, query url.Values) (*SearchPage, error) {
	var page SearchPage
	if err := c.get(ctx, "/api/v1/recipes/all", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Newest 最新食譜
func (c *Client) Newest(ctx context.Context, limit int) ([]recipe.Recipe, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out recipeList
	if err := c.get(ctx, "/api/v1/recipes/newest", query, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Detail 食譜詳細頁
func (c *Client) Detail(ctx context.Context, id int64) (*RecipeDetail, error) {
	var d RecipeDetail
	if err := c.get(ctx, "/api/v1/recipes/"+strconv.FormatInt(id, 10), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Category 分類頁
func (c *Client) Category(ctx context.Context, name string, page int) (*recipe.CategoryResult, error) {
	query := url.Values{}
	if page > 1 {
		query.Set("page", strconv.Itoa(page))
	}
	var out recipe.CategoryResult
	if err := c.get(ctx, "/api/v1/categories/"+url.PathEscape(name)+"/recipes", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PantryIngredients 可選食材清單
func (c *Client) PantryIngredients(ctx context.Context) (*Ingredients, error) {
	var out Ingredients
	if err := c.get(ctx, "/api/v1/pantry/ingredients", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SignUp 註冊，成功後即為登入狀態
func (c *Client) SignUp(ctx context.Context, username, email, password string) (string, error) {
	var out messageBody
	err := c.post(ctx, "/api/v1/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &out)
	return out.Message, err
}

// SignIn 登入，之後的請求帶上登入 cookie
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	var out messageBody
	err := c.post(ctx, "/api/v1/auth/signin", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out.Message, err
}

// SignOut 登出
func (c *Client) SignOut(ctx context.Context) error {
	return c.post(ctx, "/api/v1/auth/signout", nil, &messageBody{})
}

// UpdateFavorite 新增或移除收藏，伺服器回報失敗時回傳訊息作為錯誤
func (c *Client) UpdateFavorite(ctx context.Context, recipeID int64, action string) error {
	var out actionBody
	if err := c.post(ctx, "/api/v1/favorites", map[string]any{
		"recipeId": recipeID,
		"action":   action,
	}, &out); err != nil {
		return err
	}
	if !out.Success {
		return &APIError{Status: 200, Message: out.Message}
	}
	return nil
}

// Favorites 收藏的食譜
func (c *Client) Favorites(ctx context.Context) ([]recipe.Recipe, error) {
	var out recipeList
	if err := c.get(ctx, "/api/v1/me/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Pantry 使用者食材
func (c *Client) Pantry(ctx context.Context) ([]pantry.Entry, error) {
	var out pantryBody
	if err := c.get(ctx, "/api/v1/me/pantry", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// AddPantryItem 新增一項食材
func (c *Client) AddPantryItem(ctx context.Context, name, quantity, unit string) ([]pantry.Entry, error) {
	var out pantryBody
	if err := c.post(ctx, "/api/v1/me/pantry", map[string]any{
		"action":   "add",
		"name":     name,
		"quantity": quantity,
		"unit":     unit,
	}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// DeletePantryItem 刪除指定位置的食材
func (c *Client) DeletePantryItem(ctx context.Context, index int) ([]pantry.Entry, error) {
	var out pantryBody
	if err := c.post(ctx, "/api/v1/me/pantry", map[string]any{
		"action": "delete",
		"index":  index,
	}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// Health 服務健康狀態
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	out := map[string]any{}
	if err := c.get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
