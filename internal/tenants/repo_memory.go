package tenants

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Tenant // lowercase subdomain -> tenant
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Tenant)}
}

// Put stores a tenant, replacing any previous one with the same subdomain.
func (r *MemoryRepo) Put(t Tenant) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[strings.ToLower(t.Subdomain)] = t
}

// GetBySubdomain returns the active tenant for a subdomain.
func (r *MemoryRepo) GetBySubdomain(ctx context.Context, subdomain string) (Tenant, error) {
	if err := ctx.Err(); err != nil {
		return Tenant{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.data[strings.ToLower(subdomain)]
	if !ok || !t.Active {
		return Tenant{}, ErrNotFound
	}
	return t, nil
}

var _ Repo = (*MemoryRepo)(nil)
