package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-browser/internal/core/pantry"
	"recipe-browser/internal/core/user"
	"recipe-browser/internal/pkg/common"

	"github.com/jackc/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// uniqueViolation PostgreSQL unique_violation SQLSTATE
const uniqueViolation = "23505"

// UserRepository 以 gorm 實作的使用者存取
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 創建使用者資料庫存取
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 在交易內檢查帳號與信箱是否重複後新增
func (r *UserRepository) Create(ctx context.Context, u *user.User) (user.RegisterStatus, error) {
	favorites, err := common.ToJSON(nonNilIDs(u.Favorites))
	if err != nil {
		return user.RegisterOK, err
	}
	items, err := common.ToJSON(nonNilItems(u.Pantry))
	if err != nil {
		return user.RegisterOK, err
	}

	status := user.RegisterOK
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&UserModel{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			status = user.RegisterUsernameTaken
			return nil
		}
		if err := tx.Model(&UserModel{}).Where("email = ?", u.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			status = user.RegisterEmailTaken
			return nil
		}

		m := UserModel{
			Username:     u.Username,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Favorites:    favorites,
			PantryItems:  items,
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		u.ID = m.UserID
		u.CreatedAt = m.CreatedAt
		return nil
	})
	if err != nil {
		if taken, ok := duplicateStatus(err); ok {
			return taken, nil
		}
		return user.RegisterOK, err
	}
	return status, nil
}

// duplicateStatus 將唯一索引衝突轉成對應的註冊狀態，用於同時註冊同名帳號
func duplicateStatus(err error) (user.RegisterStatus, bool) {
	var detail string
	var pgErr *pgconn.PgError
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		detail = pgErr.ConstraintName + " " + pgErr.Detail
	case errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		detail = liteErr.Error()
	default:
		return user.RegisterOK, false
	}
	if strings.Contains(strings.ToLower(detail), "email") {
		return user.RegisterEmailTaken, true
	}
	return user.RegisterUsernameTaken, true
}

// ByUsername 依帳號取得使用者
func (r *UserRepository) ByUsername(ctx context.Context, username string) (*user.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	favorites, err := common.ParseJSONList[int64](m.Favorites)
	if err != nil {
		return nil, fmt.Errorf("failed to decode favorites: %w", err)
	}
	items, err := common.ParseJSONList[pantry.Item](m.PantryItems)
	if err != nil {
		return nil, fmt.Errorf("failed to decode pantry: %w", err)
	}

	return &user.User{
		ID:           m.UserID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Favorites:    favorites,
		Pantry:       items,
		CreatedAt:    m.CreatedAt,
	}, nil
}

// SaveFavorites 整批寫回收藏
func (r *UserRepository) SaveFavorites(ctx context.Context, username string, ids []int64) error {
	data, err := common.ToJSON(nonNilIDs(ids))
	if err != nil {
		return err
	}
	return r.updateColumn(ctx, username, "favorites", data)
}

// SavePantry 整批寫回食材清單
func (r *UserRepository) SavePantry(ctx context.Context, username string, items []pantry.Item) error {
	data, err := common.ToJSON(nonNilItems(items))
	if err != nil {
		return err
	}
	return r.updateColumn(ctx, username, "pantry_items", data)
}

func (r *UserRepository) updateColumn(ctx context.Context, username, column, value string) error {
	res := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("username = ?", username).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return common.ErrUserNotFound
	}
	return nil
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func nonNilItems(items []pantry.Item) []pantry.Item {
	if items == nil {
		return []pantry.Item{}
	}
	return items
}
