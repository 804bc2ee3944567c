package tenants

import "strings"

// SubdomainFromHost extracts a candidate tenant subdomain from a request host.
// It returns "" when the host carries no usable subdomain: bare domains,
// "localhost", and the "www" prefix all resolve to no tenant.
func SubdomainFromHost(host string) string {
	h := strings.TrimSpace(host)
	if h == "" {
		return ""
	}
	if idx := strings.LastIndex(h, ":"); idx != -1 {
		h = h[:idx]
	}
	parts := strings.Split(h, ".")
	if len(parts) < 3 {
		return ""
	}
	first := strings.ToLower(strings.TrimSpace(parts[0]))
	if first == "" || first == "www" {
		return ""
	}
	return first
}
