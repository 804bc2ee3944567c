package files

import (
	"time"

	"recruit-backend/internal/applications"
)

// ResumeInfoResponse is the outward-facing metadata for a stored resume.
type ResumeInfoResponse struct {
	ResumeFile    string    `json:"resumeFile"`
	ApplicationID string    `json:"applicationId"`
	JobID         string    `json:"jobId"`
	SuggestedName string    `json:"suggestedName"`
	SizeBytes     int64     `json:"sizeBytes"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// ListItemResponse is one row of the admin file listing.
type ListItemResponse struct {
	ApplicationID string    `json:"applicationId"`
	JobID         string    `json:"jobId"`
	ApplicantName string    `json:"applicantName"`
	Guest         bool      `json:"guest"`
	ResumeFile    string    `json:"resumeFile"`
	OriginalName  string    `json:"originalName"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// ListResponse is the paginated admin file listing.
type ListResponse struct {
	Items       []ListItemResponse `json:"items"`
	CurrentPage int                `json:"currentPage"`
	TotalPages  int                `json:"totalPages"`
	TotalCount  int                `json:"totalCount"`
}

func toInfoResponse(d Delivery, name string) ResumeInfoResponse {
	return ResumeInfoResponse{
		ResumeFile:    name,
		ApplicationID: d.App.ID,
		JobID:         d.App.JobID,
		SuggestedName: d.SuggestedName,
		SizeBytes:     d.SizeBytes,
		SubmittedAt:   d.App.SubmittedAt,
	}
}

func toListItem(app applications.Application) ListItemResponse {
	item := ListItemResponse{
		ApplicationID: app.ID,
		JobID:         app.JobID,
		ResumeFile:    app.ResumeFile,
		OriginalName:  app.ResumeOriginalName,
		Status:        app.Status,
		SubmittedAt:   app.SubmittedAt,
	}
	if snap, ok := app.Applicant.Guest(); ok {
		item.Guest = true
		item.ApplicantName = snap.Name
	}
	return item
}
