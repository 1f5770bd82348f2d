package types

import (
	"context"
	"errors"
	"fmt"
)

// ErrorCode classifies a failure crossing the host boundary.
type ErrorCode string

const (
	ErrUnauthenticated   ErrorCode = "unauthenticated"
	ErrForbidden         ErrorCode = "forbidden"
	ErrMisconfigured     ErrorCode = "misconfigured"
	ErrUnsupported       ErrorCode = "unsupported"
	ErrRateLimit         ErrorCode = "rate_limit"
	ErrTimeout           ErrorCode = "timeout"
	ErrUnavailable       ErrorCode = "unavailable"
	ErrInternal          ErrorCode = "internal_error"
	ErrMalformedResponse ErrorCode = "malformed_response"
	ErrNotFound          ErrorCode = "not_found"
	ErrOther             ErrorCode = "other"
)

// AppError is the only error shape the host ever sees.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds an AppError with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Normalize converts any error into an AppError. AppErrors anywhere in the
// chain keep their classification.
func Normalize(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AppError{Code: ErrTimeout, Message: err.Error()}
	default:
		return &AppError{Code: ErrOther, Message: err.Error()}
	}
}

// CodeOf returns the classification of err, or "" for nil.
func CodeOf(err error) ErrorCode {
	if appErr := Normalize(err); appErr != nil {
		return appErr.Code
	}
	return ""
}
