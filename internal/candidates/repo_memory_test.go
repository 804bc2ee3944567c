package candidates

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryRepoUpsertRefreshesByID(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	createdAt := time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC)

	if _, err := repo.Upsert(ctx, Candidate{ID: "cand-1", Email: "jo@example.com", Name: "Jo", CreatedAt: createdAt}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	stored, err := repo.Upsert(ctx, Candidate{ID: "cand-1", Email: "jo@example.com", Name: "Jo Garcia", CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if stored.Name != "Jo Garcia" {
		t.Fatalf("expected refreshed name, got %q", stored.Name)
	}
	if !stored.CreatedAt.Equal(createdAt) {
		t.Fatalf("expected original creation time to survive, got %v", stored.CreatedAt)
	}
}

func TestMemoryRepoUpsertReusesAccountByEmail(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, Candidate{ID: "cand-legacy", Email: "Jo@Example.com", Name: "Jo"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	stored, err := repo.Upsert(ctx, Candidate{ID: "google:123", Email: "jo@example.com", Name: "Jo Garcia"})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if stored.ID != "cand-legacy" {
		t.Fatalf("expected existing account ID, got %q", stored.ID)
	}
	if stored.Name != "Jo Garcia" {
		t.Fatalf("expected refreshed name, got %q", stored.Name)
	}
	if _, err := repo.GetByID(ctx, "google:123"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected no second account under the new ID, got %v", err)
	}
}
