// Package apperror holds the error kinds shared by every module and their
// HTTP status mapping.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrDuplicateCode     = errors.New("an item with this code already exists in this store")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrCheckoutFailed    = errors.New("checkout failed")
	ErrStorage           = errors.New("storage failure")
)

// Status returns the HTTP status code for err.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateCode), errors.Is(err, ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Storage marks err as a failure of the underlying store, keeping the driver
// error reachable with errors.As. A nil err stays nil.
func Storage(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
