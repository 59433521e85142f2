// Package user 處理帳號註冊、登入、收藏與食材庫存。
package user

import (
	"context"
	"time"

	"recipe-browser/internal/core/pantry"
)

// User 使用者帳號
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Favorites    []int64
	Pantry       []pantry.Item
	CreatedAt    time.Time
}

// RegisterStatus 註冊結果
type RegisterStatus int

const (
	RegisterOK RegisterStatus = iota
	RegisterUsernameTaken
	RegisterEmailTaken
)

func (s RegisterStatus) String() string {
	switch s {
	case RegisterOK:
		return "ok"
	case RegisterUsernameTaken:
		return "username_taken"
	case RegisterEmailTaken:
		return "email_taken"
	default:
		return "unknown"
	}
}

// Repository 使用者資料來源
type Repository interface {
	Create(ctx context.Context, u *User) (RegisterStatus, error)
	ByUsername(ctx context.Context, username string) (*User, error)
	SaveFavorites(ctx context.Context, username string, ids []int64) error
	SavePantry(ctx context.Context, username string, items []pantry.Item) error
}

// FavoriteAction 收藏動作
type FavoriteAction string

const (
	FavoriteAdd    FavoriteAction = "add"
	FavoriteRemove FavoriteAction = "remove"
)

// PantryAction 食材清單動作
type PantryAction string

const (
	PantryAdd    PantryAction = "add"
	PantryUpdate PantryAction = "update"
	PantryDelete PantryAction = "delete"
)

// PantryChange 一次食材清單變更，update 與 delete 需要 Index
type PantryChange struct {
	Action   PantryAction
	Index    *int
	Name     string
	Quantity string
	Unit     string
}
