package candidates

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Candidate
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Candidate)}
}

// GetByID fetches a candidate by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cand, ok := r.data[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return cand, nil
}

// GetByEmail fetches a candidate by email, case-insensitively.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cand := range r.data {
		if strings.ToLower(cand.Email) == needle {
			return cand, nil
		}
	}
	return Candidate{}, ErrNotFound
}

// Upsert creates or refreshes a candidate record. An email already held by
// another account refreshes and returns that account instead.
func (r *MemoryRepo) Upsert(ctx context.Context, cand Candidate) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(cand.Email))
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.data {
		if id != cand.ID && strings.ToLower(existing.Email) == needle {
			existing.Name = cand.Name
			existing.Phone = cand.Phone
			r.data[id] = existing
			return existing, nil
		}
	}
	if existing, ok := r.data[cand.ID]; ok {
		cand.CreatedAt = existing.CreatedAt
	}
	r.data[cand.ID] = cand
	return cand, nil
}

var _ Repo = (*MemoryRepo)(nil)
