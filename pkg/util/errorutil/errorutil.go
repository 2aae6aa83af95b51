// Package errorutil defines the error shape the HTTP layer serializes
// and the mapping from internal failures onto it.
package errorutil

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

// DomainError is the single error type crossing the service boundary.
type DomainError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	HTTPStatus int               `json:"-"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *DomainError) Error() string {
	return e.Message
}

func NotFound(message string) *DomainError {
	return &DomainError{Code: "not_found", Message: message, HTTPStatus: fiber.StatusNotFound}
}

func Invalid(message string, details map[string]string) *DomainError {
	return &DomainError{
		Code:       "invalid_request",
		Message:    message,
		HTTPStatus: fiber.StatusBadRequest,
		Details:    details,
	}
}

func Conflict(message string) *DomainError {
	return &DomainError{Code: "conflict", Message: message, HTTPStatus: fiber.StatusConflict}
}

func Unauthorized(message string) *DomainError {
	return &DomainError{Code: "unauthorized", Message: message, HTTPStatus: fiber.StatusUnauthorized}
}

func Forbidden(message string) *DomainError {
	return &DomainError{Code: "forbidden", Message: message, HTTPStatus: fiber.StatusForbidden}
}

func Internal(message string) *DomainError {
	return &DomainError{Code: "internal", Message: message, HTTPStatus: fiber.StatusInternalServerError}
}

// ToDomainError normalizes any error into a DomainError, mapping
// known storage sentinels along the way.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{Code: "http_error", Message: fiberErr.Message, HTTPStatus: fiberErr.Code}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound("resource not found")
	}
	return Internal("internal server error")
}
