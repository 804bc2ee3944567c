package candidates

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const candidateColumns = "id, email, name, phone, created_at"

// GetByID fetches a candidate by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	const query = `
SELECT ` + candidateColumns + `
FROM candidates
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByEmail fetches a candidate by email, case-insensitively.
func (r *PGRepo) GetByEmail(ctx context.Context, email string) (Candidate, error) {
	const query = `
SELECT ` + candidateColumns + `
FROM candidates
WHERE lower(email) = lower($1)
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, email))
}

// Upsert creates or refreshes a candidate record. When the email already
// belongs to an account with a different ID, that account is refreshed and
// returned instead of inserting a row that would trip the case-insensitive
// email uniqueness constraint.
func (r *PGRepo) Upsert(ctx context.Context, cand Candidate) (Candidate, error) {
	existing, err := r.GetByEmail(ctx, cand.Email)
	switch {
	case err == nil && existing.ID != cand.ID:
		const update = `
UPDATE candidates
SET name = $1, phone = $2
WHERE id = $3`
		if _, err := r.DB.ExecContext(ctx, update, cand.Name, cand.Phone, existing.ID); err != nil {
			return Candidate{}, err
		}
		existing.Name = cand.Name
		existing.Phone = cand.Phone
		return existing, nil
	case err != nil && !errors.Is(err, ErrNotFound):
		return Candidate{}, err
	}

	const insert = `
INSERT INTO candidates (id, email, name, phone, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
SET email = EXCLUDED.email, name = EXCLUDED.name, phone = EXCLUDED.phone`
	if _, err := r.DB.ExecContext(ctx, insert, cand.ID, cand.Email, cand.Name, cand.Phone, cand.CreatedAt); err != nil {
		return Candidate{}, err
	}
	return cand, nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Candidate, error) {
	var cand Candidate
	err := row.Scan(&cand.ID, &cand.Email, &cand.Name, &cand.Phone, &cand.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}
	return cand, nil
}

var _ Repo = (*PGRepo)(nil)
