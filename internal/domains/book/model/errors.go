package model

import (
	"errors"
	"fmt"
)

// Store-level errors
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrVersionConflict = errors.New("version conflict: book was modified by another user")
	ErrValidation      = errors.New("book form validation failed")
)

// FailureKind classifies business failures that are rendered inline.
type FailureKind int

const (
	KindNotFound FailureKind = iota + 1
	KindOptimisticConflict
	KindValidation
)

func (k FailureKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindOptimisticConflict:
		return "optimistic_conflict"
	case KindValidation:
		return "validation_failed"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// Failure is a business failure returned by the service or raised by the
// handler after validation. Anything that is not a *Failure is unexpected.
type Failure struct {
	Kind       FailureKind
	ID         int64
	Violations Violations
}

// NotFound reports that no book with id exists.
func NotFound(id int64) *Failure {
	return &Failure{Kind: KindNotFound, ID: id}
}

// OptimisticConflict reports that the submitted version is stale.
func OptimisticConflict(id int64) *Failure {
	return &Failure{Kind: KindOptimisticConflict, ID: id}
}

// ValidationFailed carries every violation found in the submitted form.
func ValidationFailed(v Violations) *Failure {
	return &Failure{Kind: KindValidation, Violations: v}
}

func (f *Failure) Error() string {
	switch f.Kind {
	case KindNotFound:
		return fmt.Sprintf("book is not found (id = %d)", f.ID)
	case KindOptimisticConflict:
		return fmt.Sprintf("book was updated concurrently (id = %d)", f.ID)
	case KindValidation:
		return fmt.Sprintf("validation error: %s", f.Violations)
	}
	return "book failure"
}

// Unwrap lets errors.Is match the store sentinels.
func (f *Failure) Unwrap() error {
	switch f.Kind {
	case KindNotFound:
		return ErrBookNotFound
	case KindOptimisticConflict:
		return ErrVersionConflict
	case KindValidation:
		return ErrValidation
	}
	return nil
}

// AsFailure extracts a business failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
