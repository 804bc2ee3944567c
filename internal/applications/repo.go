package applications

import "context"

// Repo defines persistence operations for applications.
type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	// GetByResumeFile returns the application owning a logical resume
	// filename, or ErrNotFound.
	GetByResumeFile(ctx context.Context, name string) (Application, error)
	// SetResume attaches a logical resume filename to an application;
	// clearing it passes "".
	SetResume(ctx context.Context, id, resumeFile, originalName string) error
	// ListWithResume pages applications holding a resume, newest first,
	// optionally filtered by job.
	ListWithResume(ctx context.Context, jobID string, limit, offset int) ([]Application, error)
	CountWithResume(ctx context.Context, jobID string) (int, error)
	HasGuestSubmission(ctx context.Context, jobID, email string) (bool, error)
	HasCandidateSubmission(ctx context.Context, jobID, candidateID string) (bool, error)
}
