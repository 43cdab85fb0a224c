package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced by the store. Handlers match them with errors.Is and
// map them to HTTP statuses; ErrUnavailable is the only kind a caller should
// retry.
var (
	ErrNotFound            = errors.New("not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrForbidden           = errors.New("forbidden")
	ErrUnavailable         = errors.New("storage unavailable")
)

// wrapErr translates gorm errors into the store's error kinds. Anything that
// is not a recognized kind is treated as the storage layer failing to
// complete the operation.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConstraintViolation
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrConstraintViolation),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}
