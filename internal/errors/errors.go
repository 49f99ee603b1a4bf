package errors

import (
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Machine-readable reasons carried in errors.form of 403 bodies
const (
	ReasonMustBeOwner         = "you-must-be-an-owner"
	ReasonMustBeOwnerOrAdmin  = "you-must-be-an-owner-or-admin"
	ReasonCannotChangeOwnRole = "you-cannot-change-your-own-role"
	ReasonSoleOwner           = "user-is-only-owner-of-organizations"
)

// APIError is an HTTP response carried as an error. Handlers return it and
// the error boundary renders it.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
	}
}

// BadRequest is a 400 with optional field-level errors.
func BadRequest(message string, fieldErrors map[string]string) *APIError {
	if message == "" {
		message = "Invalid request"
	}
	return &APIError{
		Status:  http.StatusBadRequest,
		Code:    ErrCodeInvalidInput,
		Message: message,
		Errors:  fieldErrors,
	}
}

// Forbidden is a 403 whose reason is exposed under errors.form.
func Forbidden(reason string) *APIError {
	return &APIError{
		Status:  http.StatusForbidden,
		Code:    ErrCodeForbidden,
		Message: "Forbidden",
		Errors:  map[string]string{"form": reason},
	}
}

// NotFound is a 404.
func NotFound(message string) *APIError {
	if message == "" {
		message = "Resource not found"
	}
	return NewAPIError(http.StatusNotFound, ErrCodeNotFound, message)
}

// MethodNotAllowed is a 405.
func MethodNotAllowed() *APIError {
	return NewAPIError(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
}

// InternalError is the generic 500 body.
var InternalError = NewAPIError(http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")

// Redirect is a navigation response carried as an error.
type Redirect struct {
	Location string
	Status   int
}

func (r *Redirect) Error() string {
	return "redirect to " + r.Location
}

// RedirectTo builds a 302 redirect.
func RedirectTo(location string) *Redirect {
	return &Redirect{Location: location, Status: http.StatusFound}
}

// RedirectToLogin builds the redirect used by the authentication gate.
func RedirectToLogin(loginPath, originalPath string) *Redirect {
	q := url.Values{}
	q.Set("redirectTo", originalPath)
	return RedirectTo(loginPath + "?" + q.Encode())
}

// Abort renders an APIError as JSON or a Redirect as a redirect and stops
// the handler chain. It reports false for any other error.
func Abort(c *gin.Context, err error) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, apiErr)
		return true
	}

	var redirect *Redirect
	if stderrors.As(err, &redirect) {
		c.Redirect(redirect.Status, redirect.Location)
		c.Abort()
		return true
	}

	return false
}
