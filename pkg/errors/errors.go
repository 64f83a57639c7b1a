package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrInactiveAccount    = New("ACCOUNT_INACTIVE", http.StatusForbidden, "account is inactive")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Scan and session errors. Each failure class keeps its own code so the
// client can render a specific message per case.
var (
	ErrInvalidScanFormat    = New("INVALID_SCAN_FORMAT", http.StatusBadRequest, "invalid scan code format")
	ErrInvalidRole          = New("INVALID_ROLE", http.StatusBadRequest, "invalid user role")
	ErrInvalidTeacherCode   = New("INVALID_TEACHER_CODE", http.StatusBadRequest, "teacher code is missing its identifier")
	ErrTeacherNotFound      = New("TEACHER_NOT_FOUND", http.StatusNotFound, "teacher is not assigned to this class")
	ErrNoScheduledClass     = New("NO_SCHEDULED_CLASS", http.StatusNotFound, "no class is scheduled for this teacher right now")
	ErrSessionNotFound      = New("SESSION_NOT_FOUND", http.StatusNotFound, "no active session for this device")
	ErrSessionPhase         = New("SESSION_PHASE", http.StatusConflict, "operation not allowed in the current session phase")
	ErrParticipationRange   = New("PARTICIPATION_RANGE", http.StatusBadRequest, "select at least 1 and at most 5 students for participation")
	ErrHomeworkDueDate      = New("HOMEWORK_DUE_DATE", http.StatusBadRequest, "homework due date must be in the future")
	ErrSubmissionInProgress = New("SUBMISSION_IN_PROGRESS", http.StatusConflict, "a submission is already in progress")
	ErrSubmissionFailed     = New("SUBMISSION_FAILED", http.StatusBadGateway, "failed to submit session data, please try again")
	ErrDeviceNotConfigured  = New("DEVICE_NOT_CONFIGURED", http.StatusPreconditionFailed, "device is not bound to a class")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// Is reports whether any error in err's chain carries the same code as target.
func Is(err error, target *Error) bool {
	if err == nil || target == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code == target.Code
	}
	return false
}
