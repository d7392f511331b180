// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Account errors
	CodeUserEmptyUsername   Code = "USER_EMPTY_USERNAME"
	CodeUserInvalidUsername Code = "USER_INVALID_USERNAME"
	CodeUserInvalidEmail    Code = "USER_INVALID_EMAIL"
	CodeUserWeakPassword    Code = "USER_WEAK_PASSWORD"
	CodeUserUsernameTaken   Code = "USER_USERNAME_TAKEN"
	CodeUserEmailTaken      Code = "USER_EMAIL_TAKEN"

	// Credential and session errors
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeSessionRequired    Code = "SESSION_REQUIRED"
	CodeSessionInvalid     Code = "SESSION_INVALID"

	// Request errors
	CodeMalformedRequest Code = "MALFORMED_REQUEST"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUserEmptyUsername,
		CodeUserInvalidUsername,
		CodeUserInvalidEmail,
		CodeUserWeakPassword,
		CodeMalformedRequest:
		return http.StatusBadRequest

	case CodeInvalidCredentials,
		CodeSessionRequired,
		CodeSessionInvalid:
		return http.StatusUnauthorized

	case CodeUserUsernameTaken,
		CodeUserEmailTaken,
		CodeAlreadyExists:
		return http.StatusConflict

	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}
