// Package errors defines the application-level error taxonomy. Every fallible
// operation surfaces one of these classified failures, which the delivery
// layer maps 1:1 onto HTTP status codes.
package errors

import (
	"net/http"

	"catalog/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// User-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrUserAlreadyExists = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"there is already a user with such username or email",
		"",
	)

	// Credential-related errors. Password-hash mismatches are normalized to
	// this generic failure so no detail about the account leaks.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid username or password",
		"",
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"missing or invalid bearer token",
		"",
	)

	// Acronym-related errors
	ErrAcronymNotFound = NewBaseError(
		http.StatusNotFound,
		"ACRONYM_NOT_FOUND",
		"acronym not found",
		"",
	)

	// Category-related errors
	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"category not found",
		"",
	)

	ErrCategoryAlreadyExists = NewBaseError(
		http.StatusConflict,
		"CATEGORY_ALREADY_EXISTS",
		"a category with this name already exists",
		"",
	)

	// Relationship-manager errors. The original surface reports both the
	// duplicate attach and the absent detach as 406 Not Acceptable.
	ErrCategoryAlreadyAttached = NewBaseError(
		http.StatusNotAcceptable,
		"CATEGORY_ALREADY_ATTACHED",
		"acronym is already tagged with this category",
		"",
	)

	ErrCategoryNotAttached = NewBaseError(
		http.StatusNotAcceptable,
		"CATEGORY_NOT_ATTACHED",
		"acronym is not tagged with this category",
		"",
	)

	// OAuth- and SIWA-related errors
	ErrOAuthFailed = NewBaseError(
		http.StatusUnauthorized,
		"OAUTH_FAILED",
		"external authentication failed",
		"",
	)

	ErrOAuthStateInvalid = NewBaseError(
		http.StatusBadRequest,
		"OAUTH_STATE_INVALID",
		"invalid or expired state parameter",
		"",
	)

	ErrSIWATokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"SIWA_TOKEN_INVALID",
		"invalid Sign-in-with-Apple identity token",
		"",
	)

	ErrSIWAClaimsMissing = NewBaseError(
		http.StatusBadRequest,
		"SIWA_CLAIMS_MISSING",
		"name and email are required on first Sign-in-with-Apple signup",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	ErrBadRequest = NewBaseError(
		http.StatusBadRequest,
		"BAD_REQUEST",
		"malformed request",
		"",
	)

	// Upload-related errors
	ErrPictureTooLarge = NewBaseError(
		http.StatusBadRequest,
		"PICTURE_TOO_LARGE",
		"profile picture exceeds the maximum allowed size",
		"",
	)

	ErrPictureNotFound = NewBaseError(
		http.StatusNotFound,
		"PICTURE_NOT_FOUND",
		"user has no profile picture",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)
)

// NewDatabaseExecuteError wraps a low-level database failure as an internal error.
func NewDatabaseExecuteError(err error, message string) error {
	return errors.Wrap(ErrInternalError.WithDetails(err.Error()), message)
}
