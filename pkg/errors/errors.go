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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigUnavailable ErrorCode = "CONFIG_UNAVAILABLE"
	ErrInvalidPattern    ErrorCode = "INVALID_PATTERN"
	ErrSettingsInvalid   ErrorCode = "SETTINGS_INVALID"

	// Raw spool errors
	ErrFileUnreadable    ErrorCode = "FILE_UNREADABLE"
	ErrPrinterOpenFailed ErrorCode = "PRINTER_OPEN_FAILED"
	ErrJobStartFailed    ErrorCode = "JOB_START_FAILED"
	ErrPageStartFailed   ErrorCode = "PAGE_START_FAILED"
	ErrWriteFailed       ErrorCode = "WRITE_FAILED"
	ErrPageEndFailed     ErrorCode = "PAGE_END_FAILED"
	ErrJobEndFailed      ErrorCode = "JOB_END_FAILED"

	// External helper errors
	ErrProcessLaunchFailed ErrorCode = "PROCESS_LAUNCH_FAILED"
	ErrHelperFailed        ErrorCode = "HELPER_FAILED"
	ErrHelperTimeout       ErrorCode = "HELPER_TIMEOUT"
	ErrPrinterBusy         ErrorCode = "PRINTER_BUSY"
)

// DetailCode is the detail key carrying a platform or process error code.
const DetailCode = "code"

// PrintError represents a structured error with code and details
type PrintError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PrintError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PrintError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PrintError) Is(target error) bool {
	var targetErr *PrintError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PrintError with the given code and message
func New(code ErrorCode, message string) *PrintError {
	return &PrintError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PrintError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PrintError {
	return &PrintError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PrintError
func Wrap(err error, code ErrorCode, message string) *PrintError {
	if err == nil {
		return nil
	}
	return &PrintError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PrintError {
	if err == nil {
		return nil
	}
	return &PrintError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PrintError) WithDetail(key string, value interface{}) *PrintError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var printErr *PrintError
	if errors.As(err, &printErr) {
		return printErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PrintError
func GetErrorCode(err error) ErrorCode {
	var printErr *PrintError
	if errors.As(err, &printErr) {
		return printErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PrintError
func GetErrorDetails(err error) map[string]interface{} {
	var printErr *PrintError
	if errors.As(err, &printErr) {
		return printErr.Details
	}
	return nil
}

// PlatformCode returns the platform error code attached to err and whether
// one was present.
func PlatformCode(err error) (int64, bool) {
	details := GetErrorDetails(err)
	if details == nil {
		return 0, false
	}
	switch v := details[DetailCode].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint32:
		return int64(v), true
	case uintptr:
		return int64(v), true
	}
	return 0, false
}
