package files

import "errors"

var (
	// ErrNotFound indicates the file or its owning application is absent.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the caller is not entitled to the file.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalid indicates a malformed upload (wrong type, oversize).
	ErrInvalid = errors.New("invalid upload")
)
