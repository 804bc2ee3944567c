package submissions

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/applications"
	"recruit-backend/internal/candidates"
	"recruit-backend/internal/files"
	"recruit-backend/internal/jobs"
	"recruit-backend/internal/mailer"
	"recruit-backend/internal/shared/telemetry"
)

// Service gates and records unauthenticated job submissions.
type Service struct {
	Jobs       jobs.Repo
	Candidates candidates.Repo
	Apps       applications.Repo
	Files      *files.Service
	Mailer     mailer.Sender
	Now        func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// ValidateSubmission runs the guest gate in order, each step failing with its
// own reason: job existence, openness (status, deadline, cap), guest
// duplicate, then candidate-account duplicate. It has no side effects; record
// creation happens downstream, and the storage-level unique index on
// (job, email) catches the race two concurrent validations cannot see.
func (s *Service) ValidateSubmission(ctx context.Context, jobID, email string) (jobs.Job, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if jobID == "" || email == "" {
		return jobs.Job{}, ErrInvalidInput
	}

	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return jobs.Job{}, err
	}

	now := s.now()
	if job.Status != jobs.StatusPublished {
		return jobs.Job{}, ErrJobClosed
	}
	if job.Deadline != nil && now.After(*job.Deadline) {
		return jobs.Job{}, ErrDeadlinePassed
	}
	if job.MaxApplications > 0 && job.CurrentApplications >= job.MaxApplications {
		return jobs.Job{}, ErrLimitReached
	}

	dup, err := s.Apps.HasGuestSubmission(ctx, jobID, email)
	if err != nil {
		return jobs.Job{}, err
	}
	if dup {
		return jobs.Job{}, ErrDuplicate
	}

	cand, err := s.Candidates.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, candidates.ErrNotFound) {
		return jobs.Job{}, err
	}
	if err == nil {
		applied, err := s.Apps.HasCandidateSubmission(ctx, jobID, cand.ID)
		if err != nil {
			return jobs.Job{}, err
		}
		if applied {
			return jobs.Job{}, ErrAlreadyApplied
		}
	}

	return job, nil
}

// Submit validates a guest submission, stores the resume, and creates the
// owning application. Text extraction and the confirmation email run
// fire-and-forget afterwards; their outcomes are logged, never surfaced.
func (s *Service) Submit(ctx context.Context, jobID string, snap applications.GuestSnapshot, originalName string, resume io.Reader, declaredSize int64) (applications.Application, error) {
	snap.Email = strings.ToLower(strings.TrimSpace(snap.Email))
	snap.Name = strings.TrimSpace(snap.Name)
	if snap.Name == "" || snap.Email == "" {
		return applications.Application{}, ErrInvalidInput
	}

	job, err := s.ValidateSubmission(ctx, jobID, snap.Email)
	if err != nil {
		return applications.Application{}, err
	}

	resumeFile, err := s.Files.StoreResume(ctx, resume, declaredSize)
	if err != nil {
		return applications.Application{}, err
	}

	app := applications.Application{
		ID:                 uuid.NewString(),
		TenantID:           job.TenantID,
		JobID:              job.ID,
		Applicant:          applications.ByGuest(snap),
		ResumeFile:         resumeFile,
		ResumeOriginalName: originalName,
		Status:             applications.StatusSubmitted,
		SubmittedAt:        s.now(),
	}
	if err := s.Apps.Create(ctx, app); err != nil {
		// Lost the race against a concurrent duplicate; the stored file has
		// no owner, remove it.
		if cleanupErr := s.Files.Store.Delete(ctx, resumeFile); cleanupErr != nil {
			telemetry.Warn("submissions.orphan_cleanup_failed", map[string]any{
				"resume_file": resumeFile,
				"err":         cleanupErr.Error(),
			})
		}
		if errors.Is(err, applications.ErrDuplicate) {
			return applications.Application{}, ErrDuplicate
		}
		return applications.Application{}, err
	}

	if err := s.Jobs.IncrementApplications(ctx, job.ID); err != nil {
		telemetry.Warn("submissions.counter_increment_failed", map[string]any{
			"job_id": job.ID,
			"err":    err.Error(),
		})
	}

	if s.Files.Extractor != nil {
		s.Files.Extractor.ExtractAsync(resumeFile)
	}
	s.sendConfirmation(app, job)

	return app, nil
}

// sendConfirmation dispatches the submission confirmation without blocking
// the request; failures are logged and never propagate.
func (s *Service) sendConfirmation(app applications.Application, job jobs.Job) {
	if s.Mailer == nil {
		return
	}
	snap, ok := app.Applicant.Guest()
	if !ok {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Mailer.Send(ctx, mailer.Message{
			To:      snap.Email,
			Subject: "Application received: " + job.Title,
			Body: "Hi " + snap.Name + ",\n\n" +
				"We received your application for " + job.Title + ". " +
				"We'll be in touch once it has been reviewed.\n",
		})
		telemetry.Info("submissions.confirmation_dispatched", map[string]any{
			"application_id": app.ID,
			"job_id":         job.ID,
		})
	}()
}
