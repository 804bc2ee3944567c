package applications

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const appColumns = `id, tenant_id, job_id, candidate_id, guest_name, guest_email, guest_phone, resume_file, resume_original_name, status, submitted_at`

// Create inserts a new application. A unique-index violation on the guest
// (job, email) or candidate (job, candidate) pair surfaces as ErrDuplicate.
func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO applications (
    id, tenant_id, job_id, candidate_id, guest_name, guest_email, guest_phone,
    resume_file, resume_original_name, status, submitted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var tenantID sql.NullString
	if app.TenantID != "" {
		tenantID = sql.NullString{String: app.TenantID, Valid: true}
	}

	var candidateID, guestName, guestEmail, guestPhone sql.NullString
	if id, ok := app.Applicant.CandidateID(); ok {
		candidateID = sql.NullString{String: id, Valid: true}
	} else if snap, ok := app.Applicant.Guest(); ok {
		guestName = sql.NullString{String: snap.Name, Valid: true}
		guestEmail = sql.NullString{String: snap.Email, Valid: true}
		guestPhone = sql.NullString{String: snap.Phone, Valid: true}
	}

	var resumeFile sql.NullString
	if app.ResumeFile != "" {
		resumeFile = sql.NullString{String: app.ResumeFile, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		app.ID,
		tenantID,
		app.JobID,
		candidateID,
		guestName,
		guestEmail,
		guestPhone,
		resumeFile,
		app.ResumeOriginalName,
		app.Status,
		app.SubmittedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID fetches an application.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Application, error) {
	const query = `
SELECT ` + appColumns + `
FROM applications
WHERE id = $1
LIMIT 1`
	return scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// GetByResumeFile returns the application owning a logical resume filename.
func (r *PGRepo) GetByResumeFile(ctx context.Context, name string) (Application, error) {
	const query = `
SELECT ` + appColumns + `
FROM applications
WHERE resume_file = $1
LIMIT 1`
	return scanOne(r.DB.QueryRowContext(ctx, query, name))
}

// SetResume attaches or clears the resume reference on an application.
func (r *PGRepo) SetResume(ctx context.Context, id, resumeFile, originalName string) error {
	const query = `
UPDATE applications
SET resume_file = $1, resume_original_name = $2
WHERE id = $3`
	var file sql.NullString
	if resumeFile != "" {
		file = sql.NullString{String: resumeFile, Valid: true}
	}
	res, err := r.DB.ExecContext(ctx, query, file, originalName, id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListWithResume pages applications holding a resume, newest first.
func (r *PGRepo) ListWithResume(ctx context.Context, jobID string, limit, offset int) ([]Application, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT ` + appColumns + `
FROM applications
WHERE resume_file IS NOT NULL AND ($1 = '' OR job_id = $1)
ORDER BY submitted_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, jobID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// CountWithResume counts applications holding a resume.
func (r *PGRepo) CountWithResume(ctx context.Context, jobID string) (int, error) {
	const query = `
SELECT count(*)
FROM applications
WHERE resume_file IS NOT NULL AND ($1 = '' OR job_id = $1)`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, jobID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// HasGuestSubmission reports whether a guest already applied to the job with
// this email.
func (r *PGRepo) HasGuestSubmission(ctx context.Context, jobID, email string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM applications
    WHERE job_id = $1 AND lower(guest_email) = lower($2)
)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, jobID, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// HasCandidateSubmission reports whether the candidate already applied to the job.
func (r *PGRepo) HasCandidateSubmission(ctx context.Context, jobID, candidateID string) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM applications
    WHERE job_id = $1 AND candidate_id = $2
)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, jobID, candidateID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (Application, error) {
	app, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

func scanRow(row rowScanner) (Application, error) {
	var app Application
	var tenantID, candidateID, guestName, guestEmail, guestPhone, resumeFile sql.NullString
	if err := row.Scan(
		&app.ID,
		&tenantID,
		&app.JobID,
		&candidateID,
		&guestName,
		&guestEmail,
		&guestPhone,
		&resumeFile,
		&app.ResumeOriginalName,
		&app.Status,
		&app.SubmittedAt,
	); err != nil {
		return Application{}, err
	}
	if tenantID.Valid {
		app.TenantID = tenantID.String
	}
	if candidateID.Valid {
		app.Applicant = OwnedBy(candidateID.String)
	} else {
		app.Applicant = ByGuest(GuestSnapshot{
			Name:  guestName.String,
			Email: guestEmail.String,
			Phone: guestPhone.String,
		})
	}
	if resumeFile.Valid {
		app.ResumeFile = resumeFile.String
	}
	return app, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repo = (*PGRepo)(nil)
