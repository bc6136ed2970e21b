package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrHistoryNotFound.HTTPStatus)
	assert.Equal(t, http.StatusNotFound, ErrDraftNotFound.HTTPStatus)
	assert.Equal(t, http.StatusTooManyRequests, ErrTooManyRequests.HTTPStatus)
	assert.Equal(t, http.StatusInternalServerError, New(CodeCacheError, "x").HTTPStatus)
}

func TestWrap_PreservesUnderlying(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(cause, CodeCacheError, "failed to save")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "5002")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestAsAppError(t *testing.T) {
	appErr := New(CodeHistoryNotFound, "not found")
	assert.Same(t, appErr, AsAppError(appErr))

	plain := stderrors.New("boom")
	converted := AsAppError(plain)
	assert.Equal(t, CodeUnknown, converted.Code)
	assert.ErrorIs(t, converted, plain)
}
