package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is a sentinel error for "not found" cases
var ErrNotFound = errors.New("not found")

// ErrPreconditionFailed is returned when a lifecycle transition finds the project
// outside the state it requires. Callers should treat it as "already handled or
// missing", never as something to retry.
var ErrPreconditionFailed = errors.New("precondition failed")

var (
	ErrProjectNotFound   = fmt.Errorf("%w: project not found", ErrPreconditionFailed)
	ErrProjectWrongState = fmt.Errorf("%w: project is not in the expected state", ErrPreconditionFailed)
)

var (
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProjectExists    = errors.New("project already exists")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPreconditionFailed reports whether a lifecycle transition was rejected
// because the project was missing or in the other state.
func IsPreconditionFailed(err error) bool {
	return errors.Is(err, ErrPreconditionFailed)
}
