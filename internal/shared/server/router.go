package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "recruit-backend/internal/auth"
	"recruit-backend/internal/files"
	"recruit-backend/internal/shared/config"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
	"recruit-backend/internal/submissions"
	"recruit-backend/internal/tenants"
)

// RouterDeps carries the wired handlers the router mounts. Construction of
// the dependencies happens in bootstrap.
type RouterDeps struct {
	Config             config.Config
	TenantRepo         tenants.Repo
	FilesHandler       *files.Handler
	SubmissionsHandler *submissions.Handler
	GoogleAuth         *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	overrideHeader := ""
	if deps.Config.Env == "dev" || deps.Config.Env == "local" {
		overrideHeader = deps.Config.TenantHeader
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		tenants.Middleware(deps.TenantRepo, overrideHeader),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.SubmissionsHandler != nil {
		deps.SubmissionsHandler.RegisterRoutes(api)
	}

	authed := api.Group("")
	authed.Use(middleware.Auth())
	registerMeRoutes(authed)
	if deps.FilesHandler != nil {
		deps.FilesHandler.RegisterRoutes(authed)
	}

	admin := authed.Group("")
	admin.Use(middleware.RequireAdmin())
	if deps.FilesHandler != nil {
		deps.FilesHandler.RegisterAdminRoutes(admin)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
