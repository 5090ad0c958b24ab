// Package apperr holds the error kinds shared by the domain services:
// validation, conflict, not found and storage failures. Domain packages
// declare their own sentinels on top of these kinds so callers can match
// either the precise error or its kind with errors.Is.
package apperr

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// Error is a domain error of a given kind.
type Error struct {
	kind    error
	message string
}

func New(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}

func Validation(message string) error {
	return New(ErrValidation, message)
}

// StorageError wraps any persistence failure that is not otherwise classified.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Storage wraps err with the operation name and a stack trace. Already
// classified errors pass through untouched.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	return &StorageError{Op: op, Err: pkgerrors.Wrap(err, op)}
}

func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

func IsClassified(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		IsStorage(err)
}
