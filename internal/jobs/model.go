package jobs

import "time"

// Job statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusClosed    = "closed"
)

// Job is a posting candidates apply to. MaxApplications of zero means no cap;
// Deadline of nil means no deadline.
type Job struct {
	ID                  string
	TenantID            string
	Title               string
	Status              string
	Deadline            *time.Time
	MaxApplications     int
	CurrentApplications int
	CreatedAt           time.Time
}

// Open reports whether the job currently accepts submissions.
func (j Job) Open(now time.Time) bool {
	if j.Status != StatusPublished {
		return false
	}
	if j.Deadline != nil && now.After(*j.Deadline) {
		return false
	}
	if j.MaxApplications > 0 && j.CurrentApplications >= j.MaxApplications {
		return false
	}
	return true
}
