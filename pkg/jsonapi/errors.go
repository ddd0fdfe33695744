package jsonapi

import (
	"fmt"
	"net/http"
	"strconv"
)

// ErrorBuilder builds Error objects.
type ErrorBuilder struct {
	err Error
}

// NewError starts an error with the given status, code, and title.
func NewError(status int, code, title string) *ErrorBuilder {
	return &ErrorBuilder{
		err: Error{
			Status: strconv.Itoa(status),
			Code:   code,
			Title:  title,
		},
	}
}

// Detail sets the human readable detail.
func (b *ErrorBuilder) Detail(detail string) *ErrorBuilder {
	b.err.Detail = detail
	return b
}

// Detailf sets the detail with formatting.
func (b *ErrorBuilder) Detailf(format string, args ...any) *ErrorBuilder {
	b.err.Detail = fmt.Sprintf(format, args...)
	return b
}

// ID sets the error ID, usually the request ID.
func (b *ErrorBuilder) ID(id string) *ErrorBuilder {
	b.err.ID = id
	return b
}

// Pointer sets the JSON pointer to the offending field.
func (b *ErrorBuilder) Pointer(pointer string) *ErrorBuilder {
	b.source().Pointer = pointer
	return b
}

// Parameter sets the path or query parameter that caused the error.
func (b *ErrorBuilder) Parameter(param string) *ErrorBuilder {
	b.source().Parameter = param
	return b
}

// Header sets the request header that caused the error.
func (b *ErrorBuilder) Header(header string) *ErrorBuilder {
	b.source().Header = header
	return b
}

func (b *ErrorBuilder) source() *ErrorSource {
	if b.err.Source == nil {
		b.err.Source = &ErrorSource{}
	}
	return b.err.Source
}

// Build returns the constructed Error.
func (b *ErrorBuilder) Build() Error {
	return b.err
}

// StatusCode returns the HTTP status as an int.
func (e Error) StatusCode() int {
	code, _ := strconv.Atoi(e.Status)
	return code
}

// ErrBadRequest creates a 400 error.
func ErrBadRequest(detail string) Error {
	return NewError(http.StatusBadRequest, "bad_request", "Bad Request").Detail(detail).Build()
}

// ErrInvalidParameter creates a 400 error naming the parameter at fault.
func ErrInvalidParameter(param, detail string) Error {
	return NewError(http.StatusBadRequest, "invalid_parameter", "Invalid Parameter").
		Detail(detail).
		Parameter(param).
		Build()
}

// ErrUnauthorized creates a 401 error. The detail is generic so that missing,
// malformed and revoked credentials look the same to the client.
func ErrUnauthorized() Error {
	return NewError(http.StatusUnauthorized, "unauthorized", "Unauthorized").
		Detail("A valid API key is required").
		Header("Authorization").
		Build()
}

// ErrForbidden creates a 403 error.
func ErrForbidden(code, detail string) Error {
	if code == "" {
		code = "forbidden"
	}
	return NewError(http.StatusForbidden, code, "Forbidden").Detail(detail).Build()
}

// ErrNotFound creates a 404 error.
func ErrNotFound(resourceType string) Error {
	return NewError(http.StatusNotFound, "not_found", "Not Found").
		Detailf("The requested %s was not found", resourceType).
		Build()
}

// ErrConflict creates a 409 error.
func ErrConflict(detail string) Error {
	return NewError(http.StatusConflict, "conflict", "Conflict").Detail(detail).Build()
}

// ErrUnsupportedMediaType creates a 415 error.
func ErrUnsupportedMediaType(contentType string) Error {
	return NewError(http.StatusUnsupportedMediaType, "unsupported_media_type", "Unsupported Media Type").
		Detailf("Content-Type %q is not supported", contentType).
		Header("Content-Type").
		Build()
}

// ErrValidation creates a 422 error for a field that failed validation.
func ErrValidation(field, message string) Error {
	return NewError(http.StatusUnprocessableEntity, "validation_error", "Validation Failed").
		Detail(message).
		Pointer("/data/attributes/" + field).
		Build()
}

// ErrInternal creates a 500 error. It never carries internal detail.
func ErrInternal() Error {
	return NewError(http.StatusInternalServerError, "internal_error", "Internal Server Error").
		Detail("An internal error occurred").
		Build()
}
