package submissions

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/files"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the submission service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches public submission routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/jobs/:id/apply", h.apply)
}

func (h *Handler) apply(c *gin.Context) {
	jobID := c.Param("id")
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, files.MaxUploadSize+(1<<20))

	snap := applications.GuestSnapshot{
		Name:  c.PostForm("name"),
		Email: c.PostForm("email"),
		Phone: c.PostForm("phone"),
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}
	if fileHeader.Size > files.MaxUploadSize {
		metrics.IncSubmissionRejected()
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume exceeds size limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read resume file", nil)
		return
	}
	defer file.Close()

	app, err := h.Svc.Submit(c.Request.Context(), jobID, snap, fileHeader.Filename, file, fileHeader.Size)
	if err != nil {
		metrics.IncSubmissionRejected()
		switch {
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		case errors.Is(err, ErrJobClosed):
			respond.Error(c, http.StatusConflict, "job_closed", "this job is no longer accepting applications", nil)
		case errors.Is(err, ErrDeadlinePassed):
			respond.Error(c, http.StatusConflict, "deadline_passed", "the application deadline has passed", nil)
		case errors.Is(err, ErrLimitReached):
			respond.Error(c, http.StatusConflict, "limit_reached", "this job has reached its application limit", nil)
		case errors.Is(err, ErrDuplicate):
			respond.Error(c, http.StatusConflict, "duplicate_submission", "an application with this email already exists for this job", nil)
		case errors.Is(err, ErrAlreadyApplied):
			respond.Error(c, http.StatusConflict, "already_applied", "an account with this email already applied; please sign in", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "name and email are required", nil)
		case errors.Is(err, files.ErrInvalid):
			respond.Error(c, http.StatusBadRequest, "validation_error", "resume must be a PDF within the size limit", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to submit application", nil)
		}
		return
	}

	metrics.IncSubmissionAccepted()
	c.Set("applicationId", app.ID)
	respond.JSON(c, http.StatusCreated, gin.H{
		"applicationId": app.ID,
		"jobId":         app.JobID,
		"resumeFile":    app.ResumeFile,
		"submittedAt":   app.SubmittedAt,
	})
}
