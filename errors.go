package graphkv

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested attribute value does not exist.
	ErrNotFound = errors.New("graphkv: not found")
)

// NotFoundError represents an error when an attribute key has no value.
type NotFoundError struct {
	label string
	key   string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("graphkv: %s %q not found", e.label, e.key)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the kind of object that was missing.
func (e *NotFoundError) Label() string {
	return e.label
}

// Key returns the key that was searched for.
func (e *NotFoundError) Key() string {
	return e.key
}

// NewNotFoundError returns a new NotFoundError for the given object kind and key.
func NewNotFoundError(label, key string) *NotFoundError {
	return &NotFoundError{label: label, key: key}
}

// IsNotFound returns true if the error reports an absent attribute value.
// Absence is a normal terminal state, not a transport failure; callers
// should branch on it rather than abort.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// TargetError reports the failure of one target within a multi-target
// edge operation.
type TargetError struct {
	Target string
	Err    error
}

// Error returns the error string.
func (e *TargetError) Error() string {
	return fmt.Sprintf("target %q: %v", e.Target, e.Err)
}

// Unwrap returns the underlying store error.
func (e *TargetError) Unwrap() error {
	return e.Err
}

// BatchError aggregates the per-target failures of a multi-target edge
// operation. Targets whose writes succeeded stay applied; BatchError
// names only the ones that failed.
type BatchError struct {
	op   string
	errs []error
}

// newBatchError filters out nil entries and returns nil when no target failed.
func newBatchError(op string, errs []error) error {
	failed := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &BatchError{op: op, errs: failed}
}

// Error returns the error string.
func (e *BatchError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("graphkv: %s: %d target(s) failed: %s", e.op, len(e.errs), strings.Join(msgs, "; "))
}

// Op returns the operation that failed, e.g. "edge add".
func (e *BatchError) Op() string {
	return e.op
}

// Unwrap returns the per-target errors.
func (e *BatchError) Unwrap() []error {
	return e.errs
}

// IsBatch returns true if the error aggregates per-target failures.
func IsBatch(err error) bool {
	if err == nil {
		return false
	}
	var e *BatchError
	return errors.As(err, &e)
}
