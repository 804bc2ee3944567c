package applications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func guestApp(id, jobID, email string, submittedAt time.Time) Application {
	return Application{
		ID:          id,
		JobID:       jobID,
		Applicant:   ByGuest(GuestSnapshot{Name: "Guest", Email: email}),
		Status:      StatusSubmitted,
		SubmittedAt: submittedAt,
	}
}

func TestMemoryRepoConcurrentGuestDuplicatesExactlyOneWins(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			app := guestApp(fmt.Sprintf("app-%d", i), "job-1", "race@example.com", time.Now().UTC())
			errs[i] = repo.Create(ctx, app)
		}(i)
	}
	wg.Wait()

	created := 0
	for i, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrDuplicate):
		default:
			t.Fatalf("attempt %d: unexpected error %v", i, err)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one submission to win, got %d", created)
	}
}

func TestMemoryRepoGuestDuplicateCaseInsensitive(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if err := repo.Create(ctx, guestApp("app-1", "job-1", "dup@example.com", time.Now().UTC())); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := repo.Create(ctx, guestApp("app-2", "job-1", "DUP@Example.COM", time.Now().UTC()))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Same email on a different job is fine.
	if err := repo.Create(ctx, guestApp("app-3", "job-2", "dup@example.com", time.Now().UTC())); err != nil {
		t.Fatalf("different job: %v", err)
	}
}

func TestMemoryRepoCandidateDuplicate(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	owned := Application{ID: "app-1", JobID: "job-1", Applicant: OwnedBy("cand-1"), SubmittedAt: time.Now().UTC()}
	if err := repo.Create(ctx, owned); err != nil {
		t.Fatalf("first create: %v", err)
	}

	again := Application{ID: "app-2", JobID: "job-1", Applicant: OwnedBy("cand-1"), SubmittedAt: time.Now().UTC()}
	if err := repo.Create(ctx, again); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestMemoryRepoGetByResumeFile(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	app := guestApp("app-1", "job-1", "g@example.com", time.Now().UTC())
	app.ResumeFile = "abc.pdf"
	if err := repo.Create(ctx, app); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByResumeFile(ctx, "abc.pdf")
	if err != nil {
		t.Fatalf("GetByResumeFile: %v", err)
	}
	if got.ID != "app-1" {
		t.Fatalf("expected app-1, got %s", got.ID)
	}

	if _, err := repo.GetByResumeFile(ctx, "missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByResumeFile(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty name, got %v", err)
	}
}

func TestMemoryRepoSetResumeRejectsReusedName(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first := guestApp("app-1", "job-1", "a@example.com", time.Now().UTC())
	first.ResumeFile = "taken.pdf"
	second := guestApp("app-2", "job-1", "b@example.com", time.Now().UTC())
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create first: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	if err := repo.SetResume(ctx, "app-2", "taken.pdf", "resume.pdf"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// Clearing a reference is always allowed.
	if err := repo.SetResume(ctx, "app-1", "", ""); err != nil {
		t.Fatalf("clear resume: %v", err)
	}
	if _, err := repo.GetByResumeFile(ctx, "taken.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected cleared name to be unowned, got %v", err)
	}
}

func TestMemoryRepoListWithResumeNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		app := guestApp(fmt.Sprintf("app-%d", i), "job-1", fmt.Sprintf("g%d@example.com", i), base.Add(time.Duration(i)*time.Minute))
		app.ResumeFile = fmt.Sprintf("file-%d.pdf", i)
		if err := repo.Create(ctx, app); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}
	// One without a resume never shows up.
	if err := repo.Create(ctx, guestApp("app-bare", "job-1", "bare@example.com", base)); err != nil {
		t.Fatalf("create bare: %v", err)
	}

	page, err := repo.ListWithResume(ctx, "job-1", 2, 0)
	if err != nil {
		t.Fatalf("ListWithResume: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page))
	}
	if page[0].ID != "app-4" || page[1].ID != "app-3" {
		t.Fatalf("expected newest first, got %s, %s", page[0].ID, page[1].ID)
	}

	count, err := repo.CountWithResume(ctx, "job-1")
	if err != nil {
		t.Fatalf("CountWithResume: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected count 5, got %d", count)
	}

	empty, err := repo.ListWithResume(ctx, "job-1", 2, 10)
	if err != nil {
		t.Fatalf("ListWithResume offset past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}
