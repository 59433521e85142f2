package user

import (
	"context"
	"errors"
	"sync"
	"testing"

	"recipe-browser/internal/core/pantry"
	"recipe-browser/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// memoryRepo 測試用的使用者儲存
type memoryRepo struct {
	mu      sync.Mutex
	users   map[string]*User
	saveErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*User)}
}

func (r *memoryRepo) Create(_ context.Context, u *User) (RegisterStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Username]; ok {
		return RegisterUsernameTaken, nil
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return RegisterEmailTaken, nil
		}
	}
	cp := *u
	cp.ID = int64(len(r.users) + 1)
	r.users[u.Username] = &cp
	return RegisterOK, nil
}

func (r *memoryRepo) ByUsername(_ context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, common.ErrUserNotFound
	}
	cp := *u
	cp.Favorites = append([]int64{}, u.Favorites...)
	cp.Pantry = append([]pantry.Item{}, u.Pantry...)
	return &cp, nil
}

func (r *memoryRepo) SaveFavorites(_ context.Context, username string, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	u, ok := r.users[username]
	if !ok {
		return common.ErrUserNotFound
	}
	u.Favorites = append([]int64{}, ids...)
	return nil
}

func (r *memoryRepo) SavePantry(_ context.Context, username string, items []pantry.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	u, ok := r.users[username]
	if !ok {
		return common.ErrUserNotFound
	}
	u.Pantry = append([]pantry.Item{}, items...)
	return nil
}

func newTestService(t *testing.T) (*Service, *memoryRepo) {
	t.Helper()
	repo := newMemoryRepo()
	s := NewService(repo, bcrypt.MinCost)
	status, err := s.Register(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, RegisterOK, status)
	return s, repo
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestService(t)

	assert.NotEqual(t, "s3cret", repo.users["alice"].PasswordHash)

	status, err := s.Register(ctx, "alice", "new@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, RegisterUsernameTaken, status)

	status, err = s.Register(ctx, "bob", "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, RegisterEmailTaken, status)

	_, err = s.Register(ctx, "  ", "x@example.com", "pw")
	assert.True(t, common.IsValidationError(err))
	assert.EqualError(t, err, "All fields are required.")
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	u, err := s.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = s.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "s3cret")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "alice", "")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestUpdateFavorite(t *testing.T) {
	ctx := context.Background()
	s, repo := newTestService(t)

	favs, err := s.UpdateFavorite(ctx, "alice", 38, FavoriteAdd)
	require.NoError(t, err)
	assert.Equal(t, []int64{38}, favs)

	favs, err = s.UpdateFavorite(ctx, "alice", 38, FavoriteAdd)
	require.NoError(t, err)
	assert.Equal(t, []int64{38}, favs, "add is idempotent")

	_, err = s.UpdateFavorite(ctx, "alice", 41, FavoriteAdd)
	require.NoError(t, err)

	favs, err = s.UpdateFavorite(ctx, "alice", 99, FavoriteRemove)
	require.NoError(t, err)
	assert.Equal(t, []int64{38, 41}, favs, "removing an absent id is a no-op")

	favs, err = s.UpdateFavorite(ctx, "alice", 38, FavoriteRemove)
	require.NoError(t, err)
	assert.Equal(t, []int64{41}, favs)

	stored, err := s.Favorites(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []int64{41}, stored)

	_, err = s.UpdateFavorite(ctx, "alice", 0, FavoriteAdd)
	assert.ErrorIs(t, err, common.ErrInvalidAction)
	_, err = s.UpdateFavorite(ctx, "alice", 5, FavoriteAction("toggle"))
	assert.ErrorIs(t, err, common.ErrInvalidAction)

	repo.saveErr = errors.New("disk full")
	_, err = s.UpdateFavorite(ctx, "alice", 7, FavoriteAdd)
	assert.EqualError(t, err, "disk full")
}

func TestUpdatePantry(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestService(t)

	entries, err := s.UpdatePantry(ctx, "alice", PantryChange{Action: PantryAdd, Name: "flour", Quantity: "2", Unit: "cups"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2 cups flour", entries[0].Quantity)
	assert.Equal(t, 2.0, entries[0].Parsed.Amount)
	assert.Equal(t, "cups", entries[0].Parsed.Unit)

	_, err = s.UpdatePantry(ctx, "alice", PantryChange{Action: PantryAdd, Name: "eggs", Quantity: "6"})
	require.NoError(t, err)

	one := 1
	entries, err = s.UpdatePantry(ctx, "alice", PantryChange{Action: PantryUpdate, Index: &one, Name: "eggs", Quantity: "12"})
	require.NoError(t, err)
	assert.Equal(t, "12", entries[1].Quantity)

	zero := 0
	entries, err = s.UpdatePantry(ctx, "alice", PantryChange{Action: PantryDelete, Index: &zero})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "eggs", entries[0].Name)

	five := 5
	_, err = s.UpdatePantry(ctx, "alice", PantryChange{Action: PantryDelete, Index: &five})
	assert.ErrorIs(t, err, common.ErrPantryIndex)
	_, err = s.UpdatePantry(ctx, "alice", PantryChange{Action: PantryUpdate, Name: "milk"})
	assert.ErrorIs(t, err, common.ErrPantryIndex)
	_, err = s.UpdatePantry(ctx, "alice", PantryChange{Action: PantryAdd, Name: " "})
	assert.ErrorIs(t, err, common.ErrInvalidAction)
	_, err = s.UpdatePantry(ctx, "alice", PantryChange{Action: "clear"})
	assert.ErrorIs(t, err, common.ErrInvalidAction)

	listed, err := s.PantryEntries(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestRegisterStatusString(t *testing.T) {
	assert.Equal(t, "ok", RegisterOK.String())
	assert.Equal(t, "username_taken", RegisterUsernameTaken.String())
	assert.Equal(t, "email_taken", RegisterEmailTaken.String())
	assert.Equal(t, "unknown", RegisterStatus(42).String())
}
