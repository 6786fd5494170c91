package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// errorRule maps a domain error code to a response. A zero status forwards
// the remote status carried by the error.
type errorRule struct {
	appCode string
	status  int
	code    string
}

// translateError picks the first rule matching err. The response message is
// always the domain message so internal details stay in the logs.
func translateError(err error, rules []errorRule, fallback errorRule) *HTTPError {
	rule := fallback
	for _, candidate := range rules {
		if apperrors.IsCode(err, candidate.appCode) {
			rule = candidate
			break
		}
	}
	status := rule.status
	if status == 0 {
		status = forwardedStatus(err)
	}
	return NewHTTPError(status, rule.code, apperrors.Message(err), err)
}

// forwardedStatus relays remote error statuses; anything outside 4xx/5xx becomes 502.
func forwardedStatus(err error) int {
	status, ok := apperrors.UpstreamStatus(err)
	if !ok || status < http.StatusBadRequest || status > 599 {
		return http.StatusBadGateway
	}
	return status
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
