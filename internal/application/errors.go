package application

import "errors"

// Service-level failures. Handlers translate these to HTTP statuses.
var (
	// ErrValidation covers missing or empty-after-trim required input.
	ErrValidation = errors.New("missing required field")
	// ErrDuplicateUser is returned when the normalized email or username is taken.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong
	// password so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidID is returned when a path id is not a well-formed identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned when no record matches the given id.
	ErrNotFound = errors.New("not found")
	// ErrFetchFailed wraps any store-level fault during listing.
	ErrFetchFailed = errors.New("failed to fetch records")
)
