package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-browser/internal/core/pantry"
	"recipe-browser/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Service 使用者服務
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService 創建使用者服務，cost 小於 bcrypt.MinCost 時使用預設值
func NewService(repo Repository, bcryptCost int) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// Register 建立帳號，帳號或信箱重複時以狀態回報
func (s *Service) Register(ctx context.Context, username, email, password string) (RegisterStatus, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return RegisterOK, common.NewValidationError("All fields are required.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return RegisterOK, fmt.Errorf("failed to hash password: %w", err)
	}

	status, err := s.repo.Create(ctx, &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Favorites:    []int64{},
		Pantry:       []pantry.Item{},
	})
	if err != nil {
		return RegisterOK, fmt.Errorf("failed to create user: %w", err)
	}

	common.LogInfo("使用者註冊",
		zap.String("username", username),
		zap.String("status", status.String()),
	)
	return status, nil
}

// Authenticate 驗證帳密，帳號不存在與密碼錯誤回傳相同錯誤
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}
	u, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, common.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}
	return u, nil
}

// Favorites 收藏的食譜 ID
func (s *Service) Favorites(ctx context.Context, username string) ([]int64, error) {
	u, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

// UpdateFavorite 讀取後整批寫回，新增不重複，移除不存在的 ID 視為成功
func (s *Service) UpdateFavorite(ctx context.Context, username string, recipeID int64, action FavoriteAction) ([]int64, error) {
	if recipeID <= 0 || (action != FavoriteAdd && action != FavoriteRemove) {
		return nil, common.ErrInvalidAction
	}

	u, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	favorites := make([]int64, 0, len(u.Favorites)+1)
	found := false
	for _, id := range u.Favorites {
		if id == recipeID {
			found = true
			if action == FavoriteRemove {
				continue
			}
		}
		favorites = append(favorites, id)
	}
	if action == FavoriteAdd && !found {
		favorites = append(favorites, recipeID)
	}

	if err := s.repo.SaveFavorites(ctx, username, favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Pantry 使用者食材
func (s *Service) Pantry(ctx context.Context, username string) ([]pantry.Item, error) {
	u, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return u.Pantry, nil
}

// PantryEntries 使用者食材與解析後的數量
func (s *Service) PantryEntries(ctx context.Context, username string) ([]pantry.Entry, error) {
	items, err := s.Pantry(ctx, username)
	if err != nil {
		return nil, err
	}
	return pantry.Entries(items), nil
}

// UpdatePantry 新增、修改或刪除一項食材
func (s *Service) UpdatePantry(ctx context.Context, username string, change PantryChange) ([]pantry.Entry, error) {
	items, err := s.Pantry(ctx, username)
	if err != nil {
		return nil, err
	}

	item := pantry.NewItem(change.Name, change.Quantity, change.Unit)
	switch change.Action {
	case PantryAdd:
		if item.Name == "" {
			return nil, common.ErrInvalidAction
		}
		items = append(items, item)
	case PantryUpdate:
		i, ok := validIndex(change.Index, len(items))
		if !ok {
			return nil, common.ErrPantryIndex
		}
		if item.Name == "" {
			return nil, common.ErrInvalidAction
		}
		items[i] = item
	case PantryDelete:
		i, ok := validIndex(change.Index, len(items))
		if !ok {
			return nil, common.ErrPantryIndex
		}
		items = append(items[:i], items[i+1:]...)
	default:
		return nil, common.ErrInvalidAction
	}

	if err := s.repo.SavePantry(ctx, username, items); err != nil {
		return nil, err
	}
	return pantry.Entries(items), nil
}

func validIndex(idx *int, n int) (int, bool) {
	if idx == nil || *idx < 0 || *idx >= n {
		return 0, false
	}
	return *idx, true
}
