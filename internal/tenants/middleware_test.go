package tenants_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/tenants"
)

func newTenantRouter(repo tenants.Repo) (*gin.Engine, *capture) {
	gin.SetMode(gin.TestMode)
	captured := &capture{}
	router := gin.New()
	router.Use(tenants.Middleware(repo, "X-Tenant"))
	router.GET("/inspect", func(c *gin.Context) {
		captured.tenant, captured.resolved = tenants.FromContext(c)
		captured.tenantID = tenants.IDFromContext(c)
		c.Status(http.StatusOK)
	})
	return router, captured
}

type capture struct {
	tenant   tenants.Tenant
	tenantID string
	resolved bool
}

func seedRepo() *tenants.MemoryRepo {
	repo := tenants.NewMemoryRepo()
	repo.Put(tenants.Tenant{
		ID:        "tenant-1",
		Name:      "Acme",
		Subdomain: "acme",
		Active:    true,
		CreatedAt: time.Now().UTC(),
	})
	repo.Put(tenants.Tenant{
		ID:        "tenant-2",
		Name:      "Dormant",
		Subdomain: "dormant",
		Active:    false,
		CreatedAt: time.Now().UTC(),
	})
	return repo
}

func TestTenantMiddlewareResolvesFromHost(t *testing.T) {
	router, captured := newTenantRouter(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/inspect", nil)
	req.Host = "acme.recruiter.io"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !captured.resolved {
		t.Fatalf("expected tenant to resolve")
	}
	if captured.tenantID != "tenant-1" {
		t.Fatalf("expected tenant-1, got %q", captured.tenantID)
	}
}

func TestTenantMiddlewareFallsBackToHeader(t *testing.T) {
	router, captured := newTenantRouter(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/inspect", nil)
	req.Host = "localhost:8080"
	req.Header.Set("X-Tenant", "ACME")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if captured.tenantID != "tenant-1" {
		t.Fatalf("expected tenant-1, got %q", captured.tenantID)
	}
}

func TestTenantMiddlewareEmptyOverrideDisablesHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	captured := &capture{}
	router := gin.New()
	router.Use(tenants.Middleware(seedRepo(), ""))
	router.GET("/inspect", func(c *gin.Context) {
		captured.tenant, captured.resolved = tenants.FromContext(c)
		captured.tenantID = tenants.IDFromContext(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/inspect", nil)
	req.Host = "localhost:8080"
	req.Header.Set("X-Tenant", "acme")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if captured.resolved || captured.tenantID != "" {
		t.Fatalf("expected header to be ignored without an override name, got %q", captured.tenantID)
	}
}

func TestTenantMiddlewareUnknownSubdomainProceedsWithoutTenant(t *testing.T) {
	router, captured := newTenantRouter(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/inspect", nil)
	req.Host = "ghost.recruiter.io"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected request to proceed, got %d", resp.Code)
	}
	if captured.resolved || captured.tenantID != "" {
		t.Fatalf("expected no tenant, got %q", captured.tenantID)
	}
}

func TestTenantMiddlewareInactiveTenantNotResolved(t *testing.T) {
	router, captured := newTenantRouter(seedRepo())

	req := httptest.NewRequest(http.MethodGet, "/inspect", nil)
	req.Host = "dormant.recruiter.io"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected request to proceed, got %d", resp.Code)
	}
	if captured.resolved {
		t.Fatalf("expected inactive tenant to stay unresolved")
	}
}

type failingRepo struct{}

func (failingRepo) GetBySubdomain(ctx context.Context, subdomain string) (tenants.Tenant, error) {
	return tenants.Tenant{}, errors.New("connection refused")
}

func TestTenantMiddlewareLookupFailureProceeds(t *testing.T) {
	router, captured := newTenantRouter(failingRepo{})

	req := httptest.NewRequest(http.MethodGet, "/inspect", nil)
	req.Host = "acme.recruiter.io"
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected lookup failure to be swallowed, got %d", resp.Code)
	}
	if captured.resolved {
		t.Fatalf("expected no tenant on lookup failure")
	}
}
