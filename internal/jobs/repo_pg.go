package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// GetByID fetches a job.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Job, error) {
	const query = `
SELECT id, tenant_id, title, status, deadline, max_applications, current_applications, created_at
FROM jobs
WHERE id = $1
LIMIT 1`
	var job Job
	var tenantID sql.NullString
	var deadline sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&job.ID,
		&tenantID,
		&job.Title,
		&job.Status,
		&deadline,
		&job.MaxApplications,
		&job.CurrentApplications,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	if tenantID.Valid {
		job.TenantID = tenantID.String
	}
	if deadline.Valid {
		t := deadline.Time
		job.Deadline = &t
	}
	return job, nil
}

// Create inserts a new job.
func (r *PGRepo) Create(ctx context.Context, job Job) error {
	const query = `
INSERT INTO jobs (id, tenant_id, title, status, deadline, max_applications, current_applications, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var tenantID sql.NullString
	if job.TenantID != "" {
		tenantID = sql.NullString{String: job.TenantID, Valid: true}
	}
	var deadline sql.NullTime
	if job.Deadline != nil {
		deadline = sql.NullTime{Time: *job.Deadline, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		job.ID,
		tenantID,
		job.Title,
		job.Status,
		deadline,
		job.MaxApplications,
		job.CurrentApplications,
		job.CreatedAt,
	)
	return err
}

// IncrementApplications bumps the submission counter.
func (r *PGRepo) IncrementApplications(ctx context.Context, id string) error {
	const query = `
UPDATE jobs
SET current_applications = current_applications + 1
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
