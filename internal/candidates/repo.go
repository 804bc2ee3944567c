package candidates

import "context"

// Repo defines persistence operations for candidates.
type Repo interface {
	GetByID(ctx context.Context, id string) (Candidate, error)
	GetByEmail(ctx context.Context, email string) (Candidate, error)
	// Upsert creates the candidate or refreshes name/phone on an existing one.
	// Matching is by ID, or by email when the address already belongs to another
	// account. The stored record is returned so the sign-in flow picks up the
	// canonical ID of a returning candidate.
	Upsert(ctx context.Context, cand Candidate) (Candidate, error)
}
