package errors

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for deployment failures
const (
	// General errors
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"
	ErrIo       ErrorCode = "IO"

	// Root and discovery errors
	ErrRootNotFound  ErrorCode = "ROOT_NOT_FOUND"
	ErrThemeNotFound ErrorCode = "THEME_NOT_FOUND"

	// Descriptor errors
	ErrInvalidDescriptor ErrorCode = "INVALID_DESCRIPTOR"
	ErrInvalidLocale     ErrorCode = "INVALID_LOCALE"

	// Copy errors
	ErrCopyFailed      ErrorCode = "COPY_FAILED"
	ErrCreateDirFailed ErrorCode = "CREATE_DIR_FAILED"
	ErrDiskFull        ErrorCode = "DISK_FULL"

	// Delegation errors
	ErrDelegationFailed ErrorCode = "DELEGATION_FAILED"

	// Cancellation
	ErrCancelled ErrorCode = "CANCELLED"
)

// DeployError represents a structured error with code and details
type DeployError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DeployError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DeployError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DeployError) Is(target error) bool {
	var targetErr *DeployError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DeployError with the given code and message
func New(code ErrorCode, message string) *DeployError {
	return &DeployError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DeployError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DeployError {
	return &DeployError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DeployError
func Wrap(err error, code ErrorCode, message string) *DeployError {
	if err == nil {
		return nil
	}
	return &DeployError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DeployError {
	if err == nil {
		return nil
	}
	return &DeployError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DeployError) WithDetail(key string, value interface{}) *DeployError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DeployError
func GetErrorCode(err error) ErrorCode {
	var deployErr *DeployError
	if errors.As(err, &deployErr) {
		return deployErr.Code
	}
	return ErrUnknown
}

// IsDiskFull reports whether err is the platform's out-of-space condition.
// Operators need to tell "disk full" apart from generic I/O failure, so
// ENOSPC gets its own code instead of being folded into COPY_FAILED.
func IsDiskFull(err error) bool {
	return errors.Is(err, syscall.ENOSPC)
}
