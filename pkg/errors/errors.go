package errors

import "errors"

// Codes shared between domain services and the HTTP layer.
const (
	CodeInvalidInput   = "invalid_input"
	CodeUserNotFound   = "user_not_found"
	CodeReportNotFound = "report_not_found"
	CodeUpstream       = "upstream_error"
	CodeInvalidToken   = "invalid_token"
	CodeStorage        = "storage_error"
	CodeInternal       = "internal_error"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	return Code(err) == code
}

// Code returns the outermost AppError code in the chain, or "" if none.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
