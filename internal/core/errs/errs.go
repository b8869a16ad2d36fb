// Package errs holds the error taxonomy shared by services and adapters.
package errs

import "errors"

var (
	// ErrNotFound: a resource or one of its ancestors does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the caller is authenticated but is neither the owner nor an admin.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials: unknown user name or wrong password.
	ErrInvalidCredentials = errors.New("username or password was incorrect")
	// ErrUsernameTaken: registration with a user name that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidRefreshToken: the refresh token failed validation or its session is gone.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrConflict: a conditional write found the stored value already changed.
	ErrConflict = errors.New("conflict")
)
