package tenants

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// GetBySubdomain returns the active tenant for a subdomain.
func (r *PGRepo) GetBySubdomain(ctx context.Context, subdomain string) (Tenant, error) {
	const query = `
SELECT id, name, subdomain, active, created_at
FROM tenants
WHERE lower(subdomain) = lower($1) AND active = TRUE
LIMIT 1`
	var t Tenant
	err := r.DB.QueryRowContext(ctx, query, subdomain).Scan(
		&t.ID,
		&t.Name,
		&t.Subdomain,
		&t.Active,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tenant{}, ErrNotFound
		}
		return Tenant{}, err
	}
	return t, nil
}

var _ Repo = (*PGRepo)(nil)
