package model

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ============================================
// ERROR CODES
// ============================================

const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeGameNotFound     = "GAME_NOT_FOUND"
	CodeUnauthenticated  = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeInternal         = "INTERNAL_ERROR"
)

// ============================================
// VALIDATION ERROR
// ============================================

// ValidationError lists every violated field, keyed by wire name
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("[%s] %s", CodeValidationFailed, strings.Join(parts, "; "))
}

// Has reports whether the named field was rejected
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// NewValidationError converts ozzo validation output into a ValidationError.
// Returns nil for a nil input; internal validator errors are passed through unchanged.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for field, ferr := range verrs {
			if ferr != nil {
				fields[field] = ferr.Error()
			}
		}
		if len(fields) == 0 {
			return nil
		}
		return &ValidationError{Fields: fields}
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	return &ValidationError{Fields: map[string]string{"body": err.Error()}}
}

// NewFieldError builds a single-field validation failure
func NewFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// MergeValidationErrors combines the fields of several validation failures; a field
// reported by a later error replaces the earlier message. A non-validation error is
// returned as is. Returns nil when every input is nil.
func MergeValidationErrors(errs ...error) error {
	fields := map[string]string{}
	for _, err := range errs {
		if err == nil {
			continue
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		for k, v := range verr.Fields {
			fields[k] = v
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// ============================================
// NOT FOUND ERROR
// ============================================

// NotFoundError - game id không tồn tại
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("[%s] game %d not found", CodeGameNotFound, e.ID)
}

// ============================================
// UNAUTHORIZED ERROR
// ============================================

// UnauthorizedError - principal thiếu capability cần thiết
type UnauthorizedError struct {
	Capability    string
	Authenticated bool
}

func (e *UnauthorizedError) Error() string {
	if !e.Authenticated {
		return fmt.Sprintf("[%s] authentication required for %s", CodeUnauthenticated, e.Capability)
	}
	return fmt.Sprintf("[%s] missing capability %s", CodeForbidden, e.Capability)
}

// ============================================
// ERROR CHECKING FUNCTIONS
// ============================================

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}

// ============================================
// HTTP MAPPING
// ============================================

// ErrorMapping - kết quả map từ domain error sang HTTP response
type ErrorMapping struct {
	StatusCode int
	Code       string
	Message    string
	Details    interface{}
}

// MapErrorToHTTP translates a domain error into a response without leaking internals
func MapErrorToHTTP(err error) ErrorMapping {
	var (
		verr *ValidationError
		nerr *NotFoundError
		uerr *UnauthorizedError
	)

	switch {
	case errors.As(err, &verr):
		return ErrorMapping{
			StatusCode: http.StatusBadRequest,
			Code:       CodeValidationFailed,
			Message:    "One or more fields are invalid",
			Details:    verr.Fields,
		}
	case errors.As(err, &nerr):
		return ErrorMapping{
			StatusCode: http.StatusNotFound,
			Code:       CodeGameNotFound,
			Message:    "Game not found",
		}
	case errors.As(err, &uerr):
		if uerr.Authenticated {
			return ErrorMapping{
				StatusCode: http.StatusForbidden,
				Code:       CodeForbidden,
				Message:    "Access denied",
			}
		}
		return ErrorMapping{
			StatusCode: http.StatusUnauthorized,
			Code:       CodeUnauthenticated,
			Message:    "Authentication required",
		}
	default:
		return ErrorMapping{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternal,
			Message:    "Internal server error",
		}
	}
}
