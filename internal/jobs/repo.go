package jobs

import "context"

// Repo defines persistence operations for jobs.
type Repo interface {
	GetByID(ctx context.Context, id string) (Job, error)
	Create(ctx context.Context, job Job) error
	// IncrementApplications bumps the submission counter after an accepted
	// application.
	IncrementApplications(ctx context.Context, id string) error
}
