// Package errors provides error code definitions for the NoteStack backend.
package errors

import "fmt"

// ErrorCode identifies a category of failure surfaced to the desktop client.
type ErrorCode string

const (
	// General errors
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
	ErrInvalid    ErrorCode = "INVALID_INPUT"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrValidation ErrorCode = "VALIDATION_ERROR"

	// Storage errors
	ErrStorage      ErrorCode = "STORAGE_ERROR"
	ErrCorruptState ErrorCode = "CORRUPT_STATE"

	// Importer errors
	ErrBridgeUnavailable ErrorCode = "BRIDGE_UNAVAILABLE"
	ErrNoteNotFound      ErrorCode = "NOTE_NOT_FOUND"
	ErrImportTimeout     ErrorCode = "IMPORT_TIMEOUT"
	ErrImportStale       ErrorCode = "IMPORT_STALE"

	// List errors
	ErrItemNotFound ErrorCode = "ITEM_NOT_FOUND"

	// Export errors
	ErrExportFailed ErrorCode = "EXPORT_FAILED"
)

// AppError represents an application error with code and message.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an underlying error.
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf extracts the error code from err, or ErrInternal when err is not an
// AppError.
func CodeOf(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrInternal
}
