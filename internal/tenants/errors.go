package tenants

import "errors"

// ErrNotFound indicates no active tenant matches the subdomain.
var ErrNotFound = errors.New("tenant not found")
