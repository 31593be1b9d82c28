package domain

import (
	"encoding/json"
	"strings"
)

// EnrollmentStatus is the relationship between a user and a project as last
// reported by the backend. The front end never computes a transition.
type EnrollmentStatus string

const (
	EnrollmentStatusUnenrolled EnrollmentStatus = "UNENROLLED"
	EnrollmentStatusPending    EnrollmentStatus = "PENDING"
	EnrollmentStatusAccepted   EnrollmentStatus = "ACCEPTED"
	EnrollmentStatusRejected   EnrollmentStatus = "REJECTED"
	EnrollmentStatusDeclined   EnrollmentStatus = "DECLINED"
	EnrollmentStatusKicked     EnrollmentStatus = "KICKED"
)

var knownStatuses = map[EnrollmentStatus]bool{
	EnrollmentStatusUnenrolled: true,
	EnrollmentStatusPending:    true,
	EnrollmentStatusAccepted:   true,
	EnrollmentStatusRejected:   true,
	EnrollmentStatusDeclined:   true,
	EnrollmentStatusKicked:     true,
}

// Normalize maps an absent status to UNENROLLED and upper-cases known values.
// Unknown values are returned unchanged.
func (s EnrollmentStatus) Normalize() EnrollmentStatus {
	trimmed := strings.TrimSpace(string(s))
	if trimmed == "" {
		return EnrollmentStatusUnenrolled
	}
	upper := EnrollmentStatus(strings.ToUpper(trimmed))
	if knownStatuses[upper] {
		return upper
	}
	return s
}

func (s EnrollmentStatus) IsKnown() bool {
	return knownStatuses[s.Normalize()]
}

// UnmarshalJSON treats null the same as a missing field.
func (s *EnrollmentStatus) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = EnrollmentStatusUnenrolled
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = EnrollmentStatus(raw).Normalize()
	return nil
}

type RequestKind string

const (
	RequestKindRequest    RequestKind = "REQUEST"
	RequestKindInvitation RequestKind = "INVITATION"
)

// EnrollmentRecord mirrors one (user, project) request or invitation.
// RequesterMessage is written by whoever initiated it, AdminMessage by whoever
// resolved it. Both are untrusted HTML.
type EnrollmentRecord struct {
	ProjectID        int32            `json:"projectId"`
	UserID           int32            `json:"userId"`
	Status           EnrollmentStatus `json:"status"`
	Kind             RequestKind      `json:"kind"`
	RequesterMessage string           `json:"requesterMessage,omitempty"`
	AdminMessage     string           `json:"adminMessage,omitempty"`
	User             *User            `json:"user,omitempty"`
	CreatedOn        string           `json:"createdOn,omitempty"`
}

// CurrentStatus returns the normalized status; a nil record is UNENROLLED.
func (r *EnrollmentRecord) CurrentStatus() EnrollmentStatus {
	if r == nil {
		return EnrollmentStatusUnenrolled
	}
	return r.Status.Normalize()
}

func (r *EnrollmentRecord) IsInvitation() bool {
	return r != nil && RequestKind(strings.ToUpper(string(r.Kind))) == RequestKindInvitation
}

type EnrollmentRole string

const (
	EnrollmentRoleLeader EnrollmentRole = "LEADER"
	EnrollmentRoleAdmin  EnrollmentRole = "ADMIN"
	EnrollmentRoleMember EnrollmentRole = "MEMBER"
)

// Enrollment is an accepted membership. Role only exists once accepted.
type Enrollment struct {
	ID      int32           `json:"id"`
	Role    EnrollmentRole  `json:"role"`
	User    *User           `json:"user,omitempty"`
	Project *ProjectSummary `json:"project,omitempty"`
}

// CanManage reports whether the role may approve, reject or revoke.
func (r EnrollmentRole) CanManage() bool {
	return r == EnrollmentRoleLeader || r == EnrollmentRoleAdmin
}
