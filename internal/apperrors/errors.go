// Package apperrors defines the sentinel errors shared across services,
// repositories and handlers. Handlers translate them to HTTP status codes.
package apperrors

import "errors"

var (
	// ErrUnauthorized means no valid session was presented where one is required.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two causes are deliberately not distinguished.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateAccount means the normalized email is already registered.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidMedia means the uploaded file has a disallowed extension.
	ErrInvalidMedia = errors.New("unsupported media type")

	// ErrNotFound means the resource id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrStorage means an underlying media read/write/delete failed.
	ErrStorage = errors.New("storage failure")

	// ErrValidation covers client input errors such as a missing or
	// over-length photo name.
	ErrValidation = errors.New("validation failed")
)
