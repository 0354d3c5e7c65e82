package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrTooManyRequests = New(
		CodeRateLimited,
		"Too many requests",
		http.StatusTooManyRequests,
	)
)

// FieldError describes a single rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RequiredField(field string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("%s is required", humanize(field))}
}

func InvalidField(field string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("%s is invalid", humanize(field))}
}

func BlankField(field string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("%s must not be blank", humanize(field))}
}

func OneOfField(field, allowed string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("%s must be one of: %s", humanize(field), allowed)}
}

func TypeMismatchField(field, want string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("%s must be a %s", humanize(field), want)}
}

func IntegerField(field, value string) FieldError {
	return FieldError{Field: field, Message: fmt.Sprintf("%s must be an integer, got %q", humanize(field), value)}
}

// Validation builds a 400 error carrying field-level details.
func Validation(details ...FieldError) *AppError {
	e := New(CodeValidation, "Request validation failed", http.StatusBadRequest)
	if len(details) > 0 {
		e.Details = details
	}
	return e
}
