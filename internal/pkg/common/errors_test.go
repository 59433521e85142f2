package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomErrorWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("search: %w", ErrSearchFailed.Wrap(cause))

	assert.ErrorIs(t, err, ErrSearchFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInternalError)

	ce := AsCustomError(err)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
	assert.Equal(t, "connection refused", ce.Error())
	assert.Nil(t, ErrSearchFailed.Err)
}

func TestAsCustomErrorFallsBackToInternal(t *testing.T) {
	ce := AsCustomError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternalError, ce.Code)
	assert.Equal(t, http.StatusInternalServerError, ce.Status)
}

func TestResponseHidesDetailsOutsideDebug(t *testing.T) {
	ce := ErrRecipeNotFound.Wrap(errors.New("record not found"))

	resp := ce.Response(false)
	assert.Equal(t, "RECIPE_NOT_FOUND", resp.Code)
	assert.Equal(t, "Recipe not found.", resp.Message)
	assert.Empty(t, resp.Details)

	assert.Equal(t, "record not found", ce.Response(true).Details)
}

func TestValidationError(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError("Username is required."))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsValidationError(ErrInvalidRequest))
	assert.EqualError(t, errors.Unwrap(err), "Username is required.")
}

func TestParseJSONList(t *testing.T) {
	ids, err := ParseJSONList[int64]("")
	require.NoError(t, err)
	assert.Equal(t, []int64{}, ids)

	ids, err = ParseJSONList[int64]("null")
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = ParseJSONList[int64](" [3, 1, 2] ")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)

	_, err = ParseJSONList[int64]("[1] [2]")
	assert.Error(t, err)

	_, err = ParseJSONList[int64]("{")
	assert.Error(t, err)
}
