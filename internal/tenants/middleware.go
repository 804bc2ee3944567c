package tenants

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/telemetry"
)

const (
	tenantKey   = "tenant"
	tenantIDKey = "tenantId"
)

// Middleware resolves the request's tenant from the host subdomain, falling
// back to the named override header. An empty overrideHeader disables the
// fallback entirely, so production traffic resolves from the host alone.
// Resolution is fail-safe: lookup errors and misses leave the request without
// a tenant and never abort it.
func Middleware(repo Repo, overrideHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subdomain := SubdomainFromHost(c.Request.Host)
		if subdomain == "" && overrideHeader != "" {
			subdomain = strings.ToLower(strings.TrimSpace(c.GetHeader(overrideHeader)))
		}
		if subdomain == "" {
			c.Next()
			return
		}

		tenant, err := repo.GetBySubdomain(c.Request.Context(), subdomain)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				telemetry.Warn("tenant.resolve.failed", map[string]any{
					"subdomain":  subdomain,
					"err":        err.Error(),
					"request_id": c.GetString("requestId"),
				})
			} else {
				telemetry.Info("tenant.resolve.miss", map[string]any{
					"subdomain":  subdomain,
					"request_id": c.GetString("requestId"),
				})
			}
			c.Next()
			return
		}

		c.Set(tenantKey, tenant)
		c.Set(tenantIDKey, tenant.ID)
		c.Next()
	}
}

// FromContext returns the resolved tenant, if any.
func FromContext(c *gin.Context) (Tenant, bool) {
	if c == nil {
		return Tenant{}, false
	}
	val, ok := c.Get(tenantKey)
	if !ok {
		return Tenant{}, false
	}
	t, ok := val.(Tenant)
	return t, ok
}

// IDFromContext returns the resolved tenant ID, or "" when no tenant applies.
func IDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	val, _ := c.Get(tenantIDKey)
	if id, ok := val.(string); ok {
		return id
	}
	return ""
}
