package submissions

import "errors"

var (
	// ErrJobClosed indicates the job is not published or was closed.
	ErrJobClosed = errors.New("job closed")

	// ErrDeadlinePassed indicates the job's application deadline has passed.
	ErrDeadlinePassed = errors.New("deadline passed")

	// ErrLimitReached indicates the job's application cap has been reached.
	ErrLimitReached = errors.New("application limit reached")

	// ErrDuplicate indicates a guest submission already exists for this job
	// and email.
	ErrDuplicate = errors.New("duplicate submission")

	// ErrAlreadyApplied indicates a candidate account with this email has
	// already applied; the caller should sign in instead.
	ErrAlreadyApplied = errors.New("already applied with an account")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")
)
