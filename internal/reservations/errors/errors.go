package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrTimeConflict = errors.New("reservation time conflicts with existing reservation")
)
