package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrConflict = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("not authenticated")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrPayloadTooLarge  = errors.New("payload too large")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// Note errors
var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrFileMissing     = errors.New("no file provided")
	ErrFileEmpty       = errors.New("no file selected")
	ErrInvalidFilename = errors.New("invalid file name")
)

// Timetable errors
var (
	ErrTimetableNotFound = errors.New("timetable not found")
)

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewStorageError wraps a driver or filesystem failure so callers only see ErrStorageUnavailable.
func NewStorageError(cause error) error {
	return &CustomError{
		Err:     ErrStorageUnavailable,
		Message: "storage unavailable",
		Details: map[string]interface{}{"cause": cause.Error()},
		cause:   cause,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
	Details map[string]interface{}

	cause error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying driver error, if any, for logging.
func (e *CustomError) Cause() error {
	return e.cause
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithField names the request field the error relates to
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}
