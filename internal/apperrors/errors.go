package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates a missing, invalid or expired session.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an authenticated caller lacking the required role or ownership.
var ErrForbidden = errors.New("forbidden")

// ErrExpiredLink indicates an activation or reset token that failed signature or expiry checks.
var ErrExpiredLink = errors.New("expired or invalid link")

// ErrBadCredentials indicates a password mismatch.
var ErrBadCredentials = errors.New("bad credentials")

// ErrEmailTaken indicates a signup request for an email that already has an account.
var ErrEmailTaken = errors.New("email is taken")

// ErrUnverifiedEmail indicates the identity provider did not vouch for the email address.
var ErrUnverifiedEmail = errors.New("email not verified")

// ErrUpstream indicates a failure of an outbound collaborator (email, identity provider, blob store).
var ErrUpstream = errors.New("upstream failure")

// AppError carries an HTTP status and a user-facing message.
// It marshals to {"error": "<message>"}.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError. err is usually one of the sentinels above.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrValidation)
}

func NewUnprocessableEntityError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, ErrValidation)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func NewConflictError(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrDuplicate)
}

func NewExpiredLinkError(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrExpiredLink)
}

func NewBadGatewayError(message string, cause error) *AppError {
	return NewAppError(http.StatusBadGateway, message, errors.Join(ErrUpstream, cause))
}

func NewInternalServerError(message string) *AppError {
	return NewAppError(http.StatusInternalServerError, message, nil)
}

// GenericMessage is returned for faults outside the taxonomy.
const GenericMessage = "Something went wrong. Please try again later."

// UniqueFieldMessage turns a violated unique constraint name such as "users_email_key"
// into a readable message ("Email already exists").
func UniqueFieldMessage(constraint, table string) string {
	field := strings.TrimSuffix(constraint, "_key")
	field = strings.TrimSuffix(field, "_idx")
	if table != "" {
		field = strings.TrimPrefix(field, table+"_")
	}
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" || field == constraint {
		return "Unique field already exists"
	}
	r := []rune(field)
	r[0] = unicode.ToUpper(r[0])
	return string(r) + " already exists"
}

// StatusOf returns the HTTP status for any error. Bare sentinels get their taxonomy status;
// anything else is 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrEmailTaken), errors.Is(err, ErrUnverifiedEmail):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrExpiredLink), errors.Is(err, ErrBadCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing message for err. Internals never leak: errors outside
// the taxonomy get GenericMessage.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "Not found"
	case errors.Is(err, ErrUnauthorized):
		return "Unauthorized"
	case errors.Is(err, ErrForbidden):
		return "Access denied"
	case errors.Is(err, ErrExpiredLink):
		return "Expired link"
	case errors.Is(err, ErrDuplicate):
		return "Unique field already exists"
	}
	return GenericMessage
}
