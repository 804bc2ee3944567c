package applications

import "errors"

var (
	// ErrNotFound indicates no application matches the lookup.
	ErrNotFound = errors.New("application not found")

	// ErrForbidden indicates the caller is not entitled to the application.
	ErrForbidden = errors.New("forbidden")

	// ErrDuplicate indicates the uniqueness constraint on (job, email) or
	// (job, candidate) was violated.
	ErrDuplicate = errors.New("duplicate application")
)
