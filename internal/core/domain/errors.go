package domain

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")

	// ErrUnavailable marks transient store failures worth a retry.
	ErrUnavailable = errors.New("store unavailable")
)
