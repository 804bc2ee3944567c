package tenants

import "time"

// Tenant is an organizational namespace identified by a unique subdomain.
// Tenants are created by an external admin workflow; this service only reads
// them to scope requests.
type Tenant struct {
	ID        string
	Name      string
	Subdomain string
	Active    bool
	CreatedAt time.Time
}
