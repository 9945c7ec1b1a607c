package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrDuplicateMember = errors.New("member already registered")
	ErrMemberNotFound  = errors.New("member not found")
	ErrWrongPassword   = errors.New("current password does not match")
	ErrPersistence     = errors.New("persistence failure")
)

// ValidationError reports malformed or inconsistent input. It is raised
// before any storage access. Fields maps the json field name to a message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// PersistenceError wraps storage engine failures, timeouts and pool
// exhaustion. It is the only error kind a caller may retry unchanged.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, ErrPersistence, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Retryable() bool { return true }

// Timeout reports whether the operation ran out of time waiting for a
// connection or for the database.
func (e *PersistenceError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded) || errors.Is(e.Err, context.Canceled)
}

// IsRetryable reports whether err may succeed when retried with the same input.
func IsRetryable(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe) && pe.Retryable()
}

// classify leaves semantic errors untouched and wraps anything else,
// including begin/commit failures, as a PersistenceError.
func classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateMember),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrPersistence):
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
