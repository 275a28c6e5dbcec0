package util

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes returned by the domain facade. The HTTP layer maps these to
// responses; nothing transport-specific leaks below the handlers.
const (
	CodeValidationFailed      = "VALIDATION_FAILED"
	CodeNotFound              = "NOT_FOUND"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeInvalidDate           = "INVALID_DATE"
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"
	CodeDuplicateCheckin      = "DUPLICATE_CHECKIN"
	CodeQuotaExceeded         = "QUOTA_EXCEEDED"
	CodeAlreadyAnswered       = "ALREADY_ANSWERED"
	CodeConflict              = "CONFLICT"
	CodeTimeout               = "TIMEOUT"
	CodeInternal              = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches two DomainErrors by code.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

// NewInvalidDate rejects back-dated registration starts.
func NewInvalidDate(message string) error {
	return NewDomainError(CodeInvalidDate, message, http.StatusBadRequest, nil)
}

// NewDuplicateRegistration signals an existing active registration.
func NewDuplicateRegistration(studentID string) error {
	return NewDomainError(CodeDuplicateRegistration, "student already has an active registration",
		http.StatusConflict, map[string]any{"student_id": studentID})
}

// NewDuplicateCheckin signals a second check-in on the same calendar day.
func NewDuplicateCheckin(studentID string) error {
	return NewDomainError(CodeDuplicateCheckin, "student already checked in today",
		http.StatusBadRequest, map[string]any{"student_id": studentID})
}

// NewQuotaExceeded signals the rolling-week attendance limit was hit.
func NewQuotaExceeded(studentID string, limit int) error {
	return NewDomainError(CodeQuotaExceeded, "check-in limit for the last 7 days reached",
		http.StatusBadRequest, map[string]any{"student_id": studentID, "limit": limit})
}

// NewAlreadyAnswered signals a help order that was answered before.
func NewAlreadyAnswered(helpOrderID string) error {
	return NewDomainError(CodeAlreadyAnswered, "help order is already answered",
		http.StatusConflict, map[string]any{"help_order_id": helpOrderID})
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
}

// NewTimeout signals a request deadline was exceeded before completion.
func NewTimeout(err error) error {
	return &DomainError{
		Code:       CodeTimeout,
		Message:    "operation deadline exceeded",
		HTTPStatus: http.StatusGatewayTimeout,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		if de, ok := NewTimeout(err).(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}

// IsCode reports whether err carries the given domain error code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
