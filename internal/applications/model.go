package applications

import "time"

// Application statuses.
const (
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusRejected  = "rejected"
)

// GuestSnapshot is the embedded identity captured for an unauthenticated
// submission. There is no candidate account behind it.
type GuestSnapshot struct {
	Name  string
	Email string
	Phone string
}

// Applicant identifies who submitted an application: either a reference to an
// authenticated candidate or a guest snapshot, never both. The zero value is
// invalid; use OwnedBy or ByGuest.
type Applicant struct {
	candidateID string
	guest       *GuestSnapshot
}

// OwnedBy builds an applicant referencing an authenticated candidate.
func OwnedBy(candidateID string) Applicant {
	return Applicant{candidateID: candidateID}
}

// ByGuest builds an applicant from a guest identity snapshot.
func ByGuest(snap GuestSnapshot) Applicant {
	return Applicant{guest: &snap}
}

// CandidateID returns the referenced candidate, if this is an owned applicant.
func (a Applicant) CandidateID() (string, bool) {
	if a.candidateID == "" {
		return "", false
	}
	return a.candidateID, true
}

// Guest returns the identity snapshot, if this is a guest applicant.
func (a Applicant) Guest() (GuestSnapshot, bool) {
	if a.guest == nil {
		return GuestSnapshot{}, false
	}
	return *a.guest, true
}

// DisplayName returns the applicant's human-readable name, or "".
func (a Applicant) DisplayName() string {
	if a.guest != nil {
		return a.guest.Name
	}
	return ""
}

// Application is the owning record for a submitted resume. ResumeFile is the
// opaque logical filename assigned at upload, or "" when no resume is
// attached.
type Application struct {
	ID                 string
	TenantID           string
	JobID              string
	Applicant          Applicant
	ResumeFile         string
	ResumeOriginalName string
	Status             string
	SubmittedAt        time.Time
}
