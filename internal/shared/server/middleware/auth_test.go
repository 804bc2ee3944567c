package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/auth"
	"recruit-backend/internal/shared/server/middleware"
)

func newAuthedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Auth())
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": middleware.UserIDFromContext(c),
			"role":   middleware.UserRoleFromContext(c),
		})
	})
	admin := router.Group("")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/admin-only", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func bearerToken(t *testing.T, sub, role string) string {
	t.Helper()
	token, err := auth.SignJWT(auth.Claims{Sub: sub, Role: role})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	return "Bearer " + token
}

func TestAuthMissingTokenUnauthorized(t *testing.T) {
	router := newAuthedRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthInvalidTokenUnauthorized(t *testing.T) {
	router := newAuthedRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", resp.Code)
	}
}

func TestAuthValidTokenSetsIdentity(t *testing.T) {
	router := newAuthedRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", bearerToken(t, "cand-1", auth.RoleCandidate))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestRequireAdminRejectsCandidate(t *testing.T) {
	router := newAuthedRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", bearerToken(t, "cand-1", auth.RoleCandidate))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", resp.Code)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	router := newAuthedRouter()

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", bearerToken(t, "admin-1", auth.RoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}
