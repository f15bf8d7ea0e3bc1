package dictgo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a removal or duplication targets a value
	// that is not in the dictionary. The dictionary is left unchanged.
	ErrNotFound = errors.New("value not found in the dictionary")

	// ErrInvalidArgument is returned when a required parameter, such as the
	// owning context, is missing.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrClosed is returned by operations on a closed dictionary.
	ErrClosed = errors.New("dictionary is closed")
)

// InternalError indicates a violated invariant, for example the backing table
// reporting success without yielding a record. It points at a latent bug
// rather than an expected runtime condition; it is surfaced to the caller
// instead of panicking.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type InternalError struct {
	Op    string
	cause error
}

func (e *InternalError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("internal error in %s: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("internal error in %s", e.Op)
}

func (e *InternalError) Unwrap() error { return e.cause }

func internalErr(op string, cause error) error {
	return &InternalError{Op: op, cause: cause}
}

// errNoRecord marks the invariant violation where the backing table reports
// success but yields no record.
var errNoRecord = errors.New("table reported success without a record")
