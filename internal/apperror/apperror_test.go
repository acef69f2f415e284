package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusOK},
		{ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("%w: no store context", ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: cart is empty", ErrValidation), http.StatusBadRequest},
		{ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("receive A1: %w", ErrDuplicateCode), http.StatusConflict},
		{ErrInsufficientStock, http.StatusConflict},
		{fmt.Errorf("%w: commit: boom", ErrCheckoutFailed), http.StatusInternalServerError},
		{errors.New("something else"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Status(c.err), "%v", c.err)
	}
}

func TestStorageKeepsCause(t *testing.T) {
	assert.NoError(t, Storage(nil))

	cause := errors.New("disk I/O error")
	err := Storage(cause)
	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, Status(err))
}
