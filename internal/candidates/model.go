package candidates

import "time"

// Candidate is an authenticated applicant account. Email is unique,
// case-insensitive.
type Candidate struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	CreatedAt time.Time
}
