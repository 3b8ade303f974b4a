package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeNetwork        ErrorType = "network"
	ErrorTypeHTTPStatus     ErrorType = "http_status"
	ErrorTypeMalformedInput ErrorType = "malformed_input"
	ErrorTypeFilesystem     ErrorType = "filesystem"
)

// Error is a failure raised by one pipeline step
type Error struct {
	Type   ErrorType
	Op     string // fetch_page, fetch_image, article_path, write ...
	Target string // URL or file path the step was working on
	Code   int    // HTTP status code, 0 when not applicable
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s error", e.Op, e.Type)
	if e.Code != 0 {
		msg += fmt.Sprintf(" (code %d)", e.Code)
	}
	if e.Target != "" {
		msg += " for " + e.Target
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given type
func New(t ErrorType, op, target string, err error) *Error {
	return &Error{Type: t, Op: op, Target: target, Err: err}
}

// Status builds an http_status error for an unexpected response code
func Status(op, target string, code int) *Error {
	return &Error{
		Type:   ErrorTypeHTTPStatus,
		Op:     op,
		Target: target,
		Code:   code,
		Err:    fmt.Errorf("unexpected status %s", http.StatusText(code)),
	}
}

// TypeOf returns the type of the first *Error in err's chain, or "" if none
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsTransient reports whether err is the kind of failure that might go away
// on its own. Nothing in the download pipeline retries; callers use this to
// word diagnostics.
func IsTransient(err error) bool {
	var e *Error
	if !stderrors.As(err, &e) {
		return false
	}
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	case ErrorTypeHTTPStatus:
		return IsTransientStatusCode(e.Code)
	default:
		return false
	}
}

// IsTransientStatusCode checks if an HTTP status code indicates a temporary condition
func IsTransientStatusCode(statusCode int) bool {
	switch statusCode {
	case 0: // Network error
		return true
	case 429: // Too Many Requests
		return true
	case 401, 403, 404, 410:
		return false
	default:
		return statusCode >= 500
	}
}
