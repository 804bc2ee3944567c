package files

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/server/middleware"
	"recruit-backend/internal/shared/server/respond"
	"recruit-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the file delivery service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches authenticated file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/files/resume", h.upload)
	rg.GET("/files/resume/:name", h.stream)
	rg.GET("/files/resume/:name/info", h.info)
	rg.DELETE("/files/resume/:name", h.delete)
}

// RegisterAdminRoutes attaches the admin-only listing route.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/files", h.list)
}

func (h *Handler) upload(c *gin.Context) {
	callerID := middleware.UserIDFromContext(c)
	role := middleware.UserRoleFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+(1<<20))

	applicationID := c.PostForm("applicationId")
	if applicationID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "applicationId is required", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > MaxUploadSize {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds size limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	name, err := h.Svc.AttachResume(c.Request.Context(), applicationID, callerID, role, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalid):
			respond.Error(c, http.StatusBadRequest, "validation_error", "file must be a PDF within the size limit", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "application not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store resume", nil)
		}
		return
	}

	c.Set("applicationId", applicationID)
	c.Set("resumeFile", name)
	respond.JSON(c, http.StatusCreated, gin.H{"resumeFile": name})
}

func (h *Handler) stream(c *gin.Context) {
	name := c.Param("name")
	callerID := middleware.UserIDFromContext(c)
	role := middleware.UserRoleFromContext(c)

	delivery, err := h.Svc.PrepareDelivery(c.Request.Context(), name, callerID, role)
	if err != nil {
		h.respondDeliveryError(c, err)
		return
	}

	reader, err := h.Svc.Open(c.Request.Context(), name)
	if err != nil {
		h.respondDeliveryError(c, err)
		return
	}
	defer reader.Close()

	c.Set("applicationId", delivery.App.ID)
	c.Set("resumeFile", name)

	// Headers only after every check has passed; from here on a failure can
	// no longer be turned into an error response.
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", delivery.SuggestedName))
	c.Header("Content-Length", strconv.FormatInt(delivery.SizeBytes, 10))
	c.Header("Cache-Control", "private, max-age=300")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Status(http.StatusOK)

	written, err := io.Copy(c.Writer, reader)
	if err != nil {
		telemetry.Error("files.stream.aborted", map[string]any{
			"resume_file":    name,
			"application_id": delivery.App.ID,
			"written_bytes":  written,
			"size_bytes":     delivery.SizeBytes,
			"err":            err.Error(),
			"request_id":     c.GetString("requestId"),
		})
		return
	}
	metrics.IncResumeDelivered()
	metrics.ObserveDeliveryBytes(float64(written))
}

func (h *Handler) info(c *gin.Context) {
	name := c.Param("name")
	callerID := middleware.UserIDFromContext(c)
	role := middleware.UserRoleFromContext(c)

	delivery, err := h.Svc.PrepareDelivery(c.Request.Context(), name, callerID, role)
	if err != nil {
		h.respondDeliveryError(c, err)
		return
	}

	c.Set("applicationId", delivery.App.ID)
	respond.JSON(c, http.StatusOK, toInfoResponse(delivery, name))
}

func (h *Handler) delete(c *gin.Context) {
	name := c.Param("name")
	role := middleware.UserRoleFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), name, role); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrForbidden):
			respond.Error(c, http.StatusForbidden, "forbidden", "admin role required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}

	c.Set("resumeFile", name)
	respond.JSON(c, http.StatusOK, gin.H{"deleted": name})
}

func (h *Handler) list(c *gin.Context) {
	jobID := c.Query("jobId")

	page := 1
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			page = parsed
		}
	}
	pageSize := 20
	if v := c.Query("pageSize"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			pageSize = parsed
		}
	}

	listing, err := h.Svc.List(c.Request.Context(), jobID, page, pageSize)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list files", nil)
		return
	}

	resp := ListResponse{
		Items:       make([]ListItemResponse, 0, len(listing.Items)),
		CurrentPage: listing.CurrentPage,
		TotalPages:  listing.TotalPages,
		TotalCount:  listing.TotalCount,
	}
	for _, app := range listing.Items {
		resp.Items = append(resp.Items, toListItem(app))
	}

	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) respondDeliveryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrForbidden):
		metrics.IncResumeDenied()
		respond.Error(c, http.StatusForbidden, "forbidden", "access denied", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load resume", nil)
	}
}
