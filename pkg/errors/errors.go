package errors

import (
	"errors"
	"fmt"
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
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handler differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Message returns the client facing message of the first AppError in err's chain.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// UpstreamError reports a non-success response from a remote server.
type UpstreamError struct {
	Service string
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed: status=%d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s request failed: status=%d body=%s", e.Service, e.Status, e.Body)
}

// UpstreamStatus returns the remote status carried anywhere in err's chain.
func UpstreamStatus(err error) (int, bool) {
	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.Status > 0 {
		return upstream.Status, true
	}
	return 0, false
}

// UpstreamBody returns the remote response excerpt carried in err's chain.
func UpstreamBody(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Body
	}
	return ""
}
