// Package errs defines the error taxonomy shared by all engine operations.
package errs

import "errors"

var (
	// ErrUnauthenticated is returned when no active identity is present.
	ErrUnauthenticated = errors.New("user is not logged in")

	// ErrNotFound is returned when the target story is absent or owned by
	// another identity.
	ErrNotFound = errors.New("story does not exist")

	// ErrTransient marks a retryable remote failure.
	ErrTransient = errors.New("remote call failed")

	// ErrAlreadyDeleted terminates a selected-story stream whose story
	// vanished while observed.
	ErrAlreadyDeleted = errors.New("story is already deleted")
)
