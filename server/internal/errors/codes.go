package errors

import (
	"fmt"
)

// ErrorCode represents a specific error type for extraction operations.
type ErrorCode string

const (
	// ErrCodeConfiguration indicates missing or invalid service configuration,
	// such as an absent LLM credential.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION"
	// ErrCodeUpstream indicates a non-success response from the LLM service.
	ErrCodeUpstream ErrorCode = "UPSTREAM"
	// ErrCodeParse indicates the model reply could not be turned into valid
	// JSON even after repair.
	ErrCodeParse ErrorCode = "PARSE"
	// ErrCodeNoEvents indicates the input carried no extractable events.
	// This is an expected outcome, not a system failure.
	ErrCodeNoEvents ErrorCode = "NO_EVENTS"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeUnsupportedFile indicates an upload of an unrecognized file type.
	ErrCodeUnsupportedFile ErrorCode = "UNSUPPORTED_FILE"
	// ErrCodeTimeout indicates the operation timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// ExtractionError represents a structured error for the extraction pipeline.
type ExtractionError struct {
	Code    ErrorCode
	Message string
	Cause   error
	// Raw carries the unmodified model output for parse diagnostics.
	Raw string
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// WithRaw attaches the raw model output to the error.
func (e *ExtractionError) WithRaw(raw string) *ExtractionError {
	e.Raw = raw
	return e
}

// GetCode returns the error code.
func (e *ExtractionError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// Configuration creates a configuration error.
func Configuration(msg string) *ExtractionError {
	return &ExtractionError{Code: ErrCodeConfiguration, Message: msg}
}

// Upstream creates an upstream error.
func Upstream(msg string, cause error) *ExtractionError {
	return &ExtractionError{Code: ErrCodeUpstream, Message: msg, Cause: cause}
}

// Parse creates a parse error carrying the raw model output.
func Parse(msg string, cause error, raw string) *ExtractionError {
	return &ExtractionError{Code: ErrCodeParse, Message: msg, Cause: cause, Raw: raw}
}

// NoEvents creates a no-events-extracted signal.
func NoEvents(msg string) *ExtractionError {
	return &ExtractionError{Code: ErrCodeNoEvents, Message: msg}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *ExtractionError {
	return &ExtractionError{Code: ErrCodeInvalidArgument, Message: msg}
}

// UnsupportedFile creates an unsupported file type error.
func UnsupportedFile(mimeType string) *ExtractionError {
	return &ExtractionError{
		Code:    ErrCodeUnsupportedFile,
		Message: fmt.Sprintf("unsupported file type: %s", mimeType),
	}
}

// Timeout creates a timeout error.
func Timeout(msg string) *ExtractionError {
	return &ExtractionError{Code: ErrCodeTimeout, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *ExtractionError {
	return &ExtractionError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error is of a specific code.
func IsCode(err error, code ErrorCode) bool {
	if exErr, ok := err.(*ExtractionError); ok {
		return exErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an ExtractionError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	if exErr, ok := err.(*ExtractionError); ok {
		return exErr.Code
	}
	return defaultCode
}
