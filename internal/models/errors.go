package models

import (
	"errors"
	"fmt"
)

// Common errors used throughout the application
var (
	// ErrStorageUnavailable means the backing store could not be reached
	// at all (network or database failure on read).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrWriteFailed means a create or update was rejected by the backing
	// store, including constraint violations and transport errors.
	ErrWriteFailed = errors.New("write failed")

	// ErrNotFound means the target of an update or delete does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidationRejected means local input failed a required-field or
	// format check before any storage call was attempted.
	ErrValidationRejected = errors.New("validation rejected")

	// ErrConfirmationRequired means a destructive operation was attempted
	// without the two-step arm/confirm sequence.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrInvalidTransition means the checkout flow received an operation
	// that is not legal in its current stage.
	ErrInvalidTransition = errors.New("transition not allowed in current stage")

	// ErrUnauthorized means the caller could not be authenticated.
	ErrUnauthorized = errors.New("unauthorized access")
)

// ErrDuplicateEvent is the write-failure reported when an event id already
// exists in the catalog.
var ErrDuplicateEvent = fmt.Errorf("duplicate event id: %w", ErrWriteFailed)
