package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// Repository errors
	ErrInvalidRepository ErrorCode = "INVALID_REPOSITORY"
	ErrRepositoryMissing ErrorCode = "REPOSITORY_MISSING"
	ErrVCS               ErrorCode = "VCS"

	// Reconciliation errors
	ErrPathContainment ErrorCode = "PATH_CONTAINMENT"
	ErrAlreadyManaged  ErrorCode = "ALREADY_MANAGED"
	ErrAmbiguousState  ErrorCode = "AMBIGUOUS_STATE"
	ErrLinkMismatch    ErrorCode = "LINK_MISMATCH"
	ErrFilesystem      ErrorCode = "FILESYSTEM"
	ErrNotInSync       ErrorCode = "NOT_IN_SYNC"
)

// MydotError represents a structured error with code and details
type MydotError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MydotError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MydotError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MydotError) Is(target error) bool {
	var targetErr *MydotError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MydotError with the given code and message
func New(code ErrorCode, message string) *MydotError {
	return &MydotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MydotError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MydotError {
	return &MydotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MydotError
func Wrap(err error, code ErrorCode, message string) *MydotError {
	if err == nil {
		return nil
	}
	return &MydotError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MydotError {
	if err == nil {
		return nil
	}
	return &MydotError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MydotError) WithDetail(key string, value interface{}) *MydotError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mydotErr *MydotError
	if errors.As(err, &mydotErr) {
		return mydotErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MydotError
func GetErrorCode(err error) ErrorCode {
	var mydotErr *MydotError
	if errors.As(err, &mydotErr) {
		return mydotErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MydotError
func GetErrorDetails(err error) map[string]interface{} {
	var mydotErr *MydotError
	if errors.As(err, &mydotErr) {
		return mydotErr.Details
	}
	return nil
}

// Describe returns the message of a MydotError without the code prefix, or
// err.Error() for any other error. Used for user-facing output.
func Describe(err error) string {
	var mydotErr *MydotError
	if errors.As(err, &mydotErr) {
		if mydotErr.Wrapped != nil {
			return fmt.Sprintf("%s: %v", mydotErr.Message, mydotErr.Wrapped)
		}
		return mydotErr.Message
	}
	return err.Error()
}

// Is is errors.Is from the standard library
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As from the standard library
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
