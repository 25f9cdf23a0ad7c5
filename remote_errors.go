// remote_errors.go - Error types for the remote MongoDB collection client

package remotemongo

import "errors"

// ErrorCode classifies errors raised by this package.
type ErrorCode int

const (
	// ErrorCodeMalformedJSON marks input or response text that failed JSON
	// parsing. Errors reported by the FunctionService are returned as
	// received and never carry this code.
	ErrorCodeMalformedJSON ErrorCode = iota + 1
)

// AppError is an error raised locally by this package. Errors originating
// from the FunctionService are never rewrapped into an AppError.
type AppError struct {
	Code    ErrorCode
	Message string
	cause   error
}

// Error returns the underlying parser diagnostic.
func (e *AppError) Error() string {
	return e.Message
}

// Unwrap returns the underlying parser error, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

func newMalformedJSONError(cause error) *AppError {
	return &AppError{Code: ErrorCodeMalformedJSON, Message: cause.Error(), cause: cause}
}

// IsMalformedJSON reports whether err is a malformed-JSON error raised by
// this package.
func IsMalformedJSON(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrorCodeMalformedJSON
}
