package candidates

import "errors"

// ErrNotFound indicates no candidate matches the lookup.
var ErrNotFound = errors.New("candidate not found")
