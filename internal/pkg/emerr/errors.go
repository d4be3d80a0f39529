package emerr

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeConflict       = "CONFLICT"
	CodeInternalError  = "INTERNAL_ERROR"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = New(fiber.StatusNotFound, CodeNotFound, "resource not found with given parameters")

	// ErrInvalidReq is returned when a request is invalid.
	ErrInvalidReq = New(fiber.StatusBadRequest, CodeInvalidRequest, "invalid request: some or all request parameters are invalid")

	// ErrUnauthorized is returned when a request carries no valid session.
	ErrUnauthorized = New(fiber.StatusUnauthorized, CodeUnauthorized, "login required")

	// ErrForbidden is returned when the session lacks the privileges for a request.
	ErrForbidden = New(fiber.StatusForbidden, CodeForbidden, "insufficient privileges")

	// ErrConflict is returned when a resource already exists.
	ErrConflict = New(fiber.StatusConflict, CodeConflict, "resource already exists")

	// ErrInternalError is returned when an internal error occurs.
	ErrInternalError = New(fiber.StatusInternalServerError, CodeInternalError, "internal server error occurred")
)

type Extras map[string]any

type EmisiError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Extras     *Extras
}

func New(statusCode int, errorCode string, message string) *EmisiError {
	return &EmisiError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

func (e EmisiError) Msg(format string, parts ...any) *EmisiError {
	e.Message = fmt.Sprintf(format, parts...)
	return &e
}

func (e EmisiError) WithExtras(extras Extras) *EmisiError {
	e.Extras = &extras
	return &e
}

func NewInvalidViolations(violations any) *EmisiError {
	e := *ErrInvalidReq
	e.Extras = &Extras{
		"violations": violations,
	}
	return &e
}

func (e *EmisiError) Error() string {
	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}
