package errors

import (
	"errors"
	"fmt"
)

// Error codes surfaced to command callers
const (
	CodeNotEligibleSource = "NOT_ELIGIBLE_SOURCE"
	CodeAlreadyInProgress = "ALREADY_IN_PROGRESS"
	CodeNoContentFound    = "NO_CONTENT_FOUND"
	CodeStorageFailure    = "STORAGE_FAILURE"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeNotFound          = "NOT_FOUND"
	CodeRateLimited       = "RATE_LIMITED"
	CodeUnavailable       = "SERVICE_UNAVAILABLE"
)

// Common errors
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotEligibleSource  = errors.New("not a company page")
	ErrAlreadyInProgress  = errors.New("already extracting")
	ErrNoContentFound     = errors.New("no suitable posts found, try again")
	ErrStorage            = errors.New("storage failure")
	ErrRateLimited        = errors.New("too many requests")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Error represents a custom error type
type Error struct {
	Code    string
	Message string
	Err     error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new error with a message
func New(message string) error {
	return &Error{
		Message: message,
	}
}

// Wrap wraps an error with additional message
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Message: message,
		Err:     err,
	}
}

// WrapWithCode wraps an error with a code and message
func WrapWithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NotEligible(url string) error {
	return WrapWithCode(ErrNotEligibleSource, CodeNotEligibleSource, fmt.Sprintf("source %q is not eligible", url))
}

func InProgress(sourceID string) error {
	return WrapWithCode(ErrAlreadyInProgress, CodeAlreadyInProgress, fmt.Sprintf("extraction for %q", sourceID))
}

func NoContent(sourceID string) error {
	return WrapWithCode(ErrNoContentFound, CodeNoContentFound, fmt.Sprintf("extraction for %q", sourceID))
}

// Unavailable reports that a collaborator the request needs is not running.
func Unavailable(err error, message string) error {
	if err == nil {
		return nil
	}
	return WrapWithCode(fmt.Errorf("%w: %w", ErrServiceUnavailable, err), CodeUnavailable, message)
}

// Storage marks err as a storage failure while keeping it in the chain.
func Storage(err error, message string) error {
	if err == nil {
		return nil
	}
	return WrapWithCode(fmt.Errorf("%w: %w", ErrStorage, err), CodeStorageFailure, message)
}

func InvalidInput(message string) error {
	return WrapWithCode(ErrInvalidInput, CodeInvalidInput, message)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetCode returns the error code if it exists
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetMessage returns the error message
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
