package enrollment

import "investiga-web/internal/domain"

// StatusLabel returns the catalog key of the badge shown for rec
func StatusLabel(rec *domain.EnrollmentRecord) string {
	switch rec.CurrentStatus() {
	case domain.EnrollmentStatusUnenrolled:
		return "Not enrolled"
	case domain.EnrollmentStatusPending:
		if rec.IsInvitation() {
			return "Invited"
		}
		return "Pending"
	case domain.EnrollmentStatusAccepted:
		return "Member"
	case domain.EnrollmentStatusRejected:
		return "Rejected"
	case domain.EnrollmentStatusDeclined:
		return "Declined"
	case domain.EnrollmentStatusKicked:
		return "Removed"
	default:
		return "Unknown status"
	}
}
