package submissions_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-backend/internal/jobs"
	"recruit-backend/internal/submissions"
)

func newApplyRouter(t *testing.T, e env) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	submissions.NewHandler(e.svc).RegisterRoutes(api)
	return router
}

func applyRequest(t *testing.T, fields map[string]string, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("resume", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write content: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/job-1/apply", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestApplyHappyPath(t *testing.T) {
	e := newEnv(t)
	seedJob(t, e, jobs.Job{ID: "job-1", Title: "Backend Engineer"})
	router := newApplyRouter(t, e)

	req, resp := applyRequest(t, map[string]string{
		"name":  "Guest",
		"email": "g@example.com",
		"phone": "555",
	}, "cv.pdf", pdfBytes)
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	if !strings.Contains(body, `"applicationId"`) || !strings.Contains(body, `"resumeFile"`) {
		t.Fatalf("unexpected payload: %s", body)
	}
}

func TestApplyUnknownJobIs404(t *testing.T) {
	e := newEnv(t)
	router := newApplyRouter(t, e)

	req, resp := applyRequest(t, map[string]string{"name": "Guest", "email": "g@example.com"}, "cv.pdf", pdfBytes)
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", resp.Code)
	}
}

func TestApplyConflictCodes(t *testing.T) {
	cases := []struct {
		name string
		job  jobs.Job
		code string
	}{
		{"closed", jobs.Job{ID: "job-1", Status: jobs.StatusClosed}, "job_closed"},
		{"deadline", jobs.Job{ID: "job-1", Deadline: timePtr(fixedNow.Add(-time.Hour))}, "deadline_passed"},
		{"cap", jobs.Job{ID: "job-1", MaxApplications: 1, CurrentApplications: 1}, "limit_reached"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			seedJob(t, e, tc.job)
			router := newApplyRouter(t, e)

			req, resp := applyRequest(t, map[string]string{"name": "Guest", "email": "g@example.com"}, "cv.pdf", pdfBytes)
			router.ServeHTTP(resp, req)

			if resp.Code != http.StatusConflict {
				t.Fatalf("expected status 409, got %d: %s", resp.Code, resp.Body.String())
			}
			if !strings.Contains(resp.Body.String(), tc.code) {
				t.Fatalf("expected code %q, got %s", tc.code, resp.Body.String())
			}
		})
	}
}

func TestApplyDuplicateIs409(t *testing.T) {
	e := newEnv(t)
	seedJob(t, e, jobs.Job{ID: "job-1"})
	router := newApplyRouter(t, e)

	fields := map[string]string{"name": "Guest", "email": "dup@example.com"}
	req, resp := applyRequest(t, fields, "cv.pdf", pdfBytes)
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("first apply: expected 201, got %d", resp.Code)
	}

	req, resp = applyRequest(t, fields, "cv.pdf", pdfBytes)
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusConflict {
		t.Fatalf("second apply: expected 409, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "duplicate_submission") {
		t.Fatalf("expected duplicate_submission code, got %s", resp.Body.String())
	}
}

func TestApplyMissingResumeIs400(t *testing.T) {
	e := newEnv(t)
	seedJob(t, e, jobs.Job{ID: "job-1"})
	router := newApplyRouter(t, e)

	req, resp := applyRequest(t, map[string]string{"name": "Guest", "email": "g@example.com"}, "", nil)
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestApplyMissingNameIs400(t *testing.T) {
	e := newEnv(t)
	seedJob(t, e, jobs.Job{ID: "job-1"})
	router := newApplyRouter(t, e)

	req, resp := applyRequest(t, map[string]string{"email": "g@example.com"}, "cv.pdf", pdfBytes)
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestApplyOversizeResumeIs400(t *testing.T) {
	e := newEnv(t)
	seedJob(t, e, jobs.Job{ID: "job-1"})
	router := newApplyRouter(t, e)

	oversize := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{'a'}, 10<<20)...)
	req, resp := applyRequest(t, map[string]string{"name": "Guest", "email": "g@example.com"}, "cv.pdf", oversize)
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func timePtr(ts time.Time) *time.Time {
	return &ts
}
