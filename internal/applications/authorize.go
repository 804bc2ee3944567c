package applications

import "recruit-backend/internal/shared/auth"

// Authorize decides whether a caller may read the resume owned by app.
// It is deny-by-default and a pure function of its three inputs:
//
//   - admins are always allowed;
//   - candidates are allowed only when the application references their own
//     candidate account; guest applications carry no authenticated identity
//     to compare against, so they are never readable by candidates, matching
//     email or not;
//   - everything else is denied.
func Authorize(app Application, callerID, role string) error {
	switch role {
	case auth.RoleAdmin:
		return nil
	case auth.RoleCandidate:
		owner, ok := app.Applicant.CandidateID()
		if ok && callerID != "" && owner == callerID {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}
