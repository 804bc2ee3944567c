package tenants

import "context"

// Repo defines read-only persistence operations for tenants.
type Repo interface {
	// GetBySubdomain returns the active tenant for a lowercase subdomain.
	GetBySubdomain(ctx context.Context, subdomain string) (Tenant, error)
}
