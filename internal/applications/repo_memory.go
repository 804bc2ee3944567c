package applications

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. Uniqueness of the guest
// (job, email) and candidate (job, candidate) pairs is enforced under the
// mutex, mirroring the database indexes: concurrent duplicate submissions
// degrade to ErrDuplicate instead of both succeeding.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Application
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Application)}
}

// Create inserts a new application, enforcing per-job applicant uniqueness.
func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.data {
		if existing.JobID != app.JobID {
			continue
		}
		if id, ok := app.Applicant.CandidateID(); ok {
			if existingID, ok2 := existing.Applicant.CandidateID(); ok2 && existingID == id {
				return ErrDuplicate
			}
		}
		if snap, ok := app.Applicant.Guest(); ok {
			if existingSnap, ok2 := existing.Applicant.Guest(); ok2 &&
				strings.EqualFold(existingSnap.Email, snap.Email) {
				return ErrDuplicate
			}
		}
	}
	r.data[app.ID] = app
	return nil
}

// GetByID fetches an application.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.data[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// GetByResumeFile returns the application owning a logical resume filename.
func (r *MemoryRepo) GetByResumeFile(ctx context.Context, name string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	if name == "" {
		return Application{}, ErrNotFound
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.data {
		if app.ResumeFile == name {
			return app, nil
		}
	}
	return Application{}, ErrNotFound
}

// SetResume attaches or clears the resume reference on an application.
func (r *MemoryRepo) SetResume(ctx context.Context, id, resumeFile, originalName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	if resumeFile != "" {
		for otherID, other := range r.data {
			if otherID != id && other.ResumeFile == resumeFile {
				return ErrDuplicate
			}
		}
	}
	app.ResumeFile = resumeFile
	app.ResumeOriginalName = originalName
	r.data[id] = app
	return nil
}

// ListWithResume pages applications holding a resume, newest first.
func (r *MemoryRepo) ListWithResume(ctx context.Context, jobID string, limit, offset int) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	var apps []Application
	for _, app := range r.data {
		if app.ResumeFile == "" {
			continue
		}
		if jobID != "" && app.JobID != jobID {
			continue
		}
		apps = append(apps, app)
	}
	r.mu.RUnlock()

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].SubmittedAt.After(apps[j].SubmittedAt)
	})

	if offset >= len(apps) {
		return []Application{}, nil
	}
	end := len(apps)
	if offset+limit < end {
		end = offset + limit
	}
	return apps[offset:end], nil
}

// CountWithResume counts applications holding a resume.
func (r *MemoryRepo) CountWithResume(ctx context.Context, jobID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, app := range r.data {
		if app.ResumeFile == "" {
			continue
		}
		if jobID != "" && app.JobID != jobID {
			continue
		}
		count++
	}
	return count, nil
}

// HasGuestSubmission reports whether a guest already applied to the job with
// this email.
func (r *MemoryRepo) HasGuestSubmission(ctx context.Context, jobID, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.data {
		if app.JobID != jobID {
			continue
		}
		if snap, ok := app.Applicant.Guest(); ok && strings.EqualFold(snap.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

// HasCandidateSubmission reports whether the candidate already applied to the job.
func (r *MemoryRepo) HasCandidateSubmission(ctx context.Context, jobID, candidateID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, app := range r.data {
		if app.JobID != jobID {
			continue
		}
		if id, ok := app.Applicant.CandidateID(); ok && id == candidateID {
			return true, nil
		}
	}
	return false, nil
}

var _ Repo = (*MemoryRepo)(nil)
