// Package enrollment maps enrollment statuses to the actions a viewer may take
// and dispatches those actions to the backend.
package enrollment

import (
	"errors"
	"fmt"

	"investiga-web/internal/domain"
	"investiga-web/internal/notify"
)

var ErrUnknownStatus = errors.New("unknown enrollment status")

// Viewpoint is who is looking at the record: the user it belongs to or a project admin
type Viewpoint string

const (
	Requester Viewpoint = "requester"
	Admin     Viewpoint = "admin"
)

// Action values double as URL segments in the enrollment forms.
type Action string

const (
	ActionRequest           Action = "request"
	ActionCancelRequest     Action = "cancel-request"
	ActionUnenroll          Action = "unenroll"
	ActionApprove           Action = "approve"
	ActionReject            Action = "reject"
	ActionRevoke            Action = "revoke"
	ActionAcknowledgeKick   Action = "acknowledge-kick"
	ActionAcceptInvitation  Action = "accept-invitation"
	ActionDeclineInvitation Action = "decline-invitation"
	ActionCancelInvitation  Action = "cancel-invitation"
	ActionInvite            Action = "invite"

	ActionViewRequesterMessage Action = "view-requester-message"
	ActionViewAdminMessage     Action = "view-admin-message"
	ActionViewRejectionDetail  Action = "view-rejection-detail"
	ActionViewRevocationDetail Action = "view-revocation-detail"
	ActionViewDeclineDetail    Action = "view-decline-detail"
)

type actionInfo struct {
	label       string
	op          notify.Operation
	view        bool
	needsTarget bool // acts on another user's record
	takesNote   bool // accepts a free-text message
	verified    bool // actor must have a verified email
}

var actions = map[Action]actionInfo{
	ActionRequest:           {label: "Request enrollment", op: notify.OpEnrollRequest, takesNote: true, verified: true},
	ActionCancelRequest:     {label: "Cancel request", op: notify.OpEnrollCancel},
	ActionUnenroll:          {label: "Leave project", op: notify.OpUnenroll, takesNote: true},
	ActionApprove:           {label: "Approve", op: notify.OpApprove, needsTarget: true, takesNote: true},
	ActionReject:            {label: "Reject", op: notify.OpReject, needsTarget: true, takesNote: true},
	ActionRevoke:            {label: "Revoke membership", op: notify.OpRevoke, needsTarget: true, takesNote: true},
	ActionAcknowledgeKick:   {label: "Dismiss", op: notify.OpAcknowledgeKick},
	ActionAcceptInvitation:  {label: "Accept invitation", op: notify.OpAcceptInvitation, takesNote: true, verified: true},
	ActionDeclineInvitation: {label: "Decline invitation", op: notify.OpDeclineInvitation, takesNote: true},
	ActionCancelInvitation:  {label: "Cancel invitation", op: notify.OpCancelInvitation, needsTarget: true},
	ActionInvite:            {label: "Invite", op: notify.OpInvite, needsTarget: true, takesNote: true},

	ActionViewRequesterMessage: {label: "View message", view: true},
	ActionViewAdminMessage:     {label: "View response", view: true},
	ActionViewRejectionDetail:  {label: "View rejection", view: true},
	ActionViewRevocationDetail: {label: "View removal", view: true},
	ActionViewDeclineDetail:    {label: "View details", view: true},
}

func ParseAction(s string) (Action, bool) {
	a := Action(s)
	_, ok := actions[a]
	return a, ok
}

// Label is the catalog key of the button text
func (a Action) Label() string {
	return actions[a].label
}

func (a Action) IsView() bool {
	return actions[a].view
}

func (a Action) Dispatchable() bool {
	info, ok := actions[a]
	return ok && !info.view
}

func (a Action) TakesNote() bool {
	return actions[a].takesNote
}

// NeedsTarget reports whether the action is issued against another user
func (a Action) NeedsTarget() bool {
	return actions[a].needsTarget
}

func (a Action) RequiresVerifiedEmail() bool {
	return actions[a].verified
}

func (a Action) Operation() notify.Operation {
	return actions[a].op
}

// Message returns the text a view action discloses. The requester message is
// written by whoever opened the record, every other view shows the resolution.
func (a Action) Message(rec *domain.EnrollmentRecord) string {
	if rec == nil || !a.IsView() {
		return ""
	}
	if a == ActionViewRequesterMessage {
		return rec.RequesterMessage
	}
	return rec.AdminMessage
}

// For returns the ordered actions available on rec from the given viewpoint.
// A nil record is UNENROLLED. Unknown statuses yield no actions and an error
// wrapping ErrUnknownStatus.
func For(rec *domain.EnrollmentRecord, vp Viewpoint) ([]Action, error) {
	status := rec.CurrentStatus()
	var requesterMsg, adminMsg bool
	if rec != nil {
		requesterMsg = rec.RequesterMessage != ""
		adminMsg = rec.AdminMessage != ""
	}

	if vp == Admin {
		return forAdmin(status, rec.IsInvitation(), requesterMsg, adminMsg)
	}
	return forRequester(status, rec.IsInvitation(), requesterMsg, adminMsg)
}

// ForStatus is For on a bare status, with no messages and kind REQUEST
func ForStatus(status domain.EnrollmentStatus, vp Viewpoint) ([]Action, error) {
	return For(&domain.EnrollmentRecord{Status: status}, vp)
}

// ForMembership returns the admin actions on an accepted membership.
// Leaders cannot be revoked.
func ForMembership(m domain.Enrollment) []Action {
	if m.Role == domain.EnrollmentRoleLeader {
		return nil
	}
	return []Action{ActionRevoke}
}

func forRequester(status domain.EnrollmentStatus, invitation, requesterMsg, adminMsg bool) ([]Action, error) {
	var out []Action
	switch status {
	case domain.EnrollmentStatusUnenrolled:
		out = append(out, ActionRequest)
	case domain.EnrollmentStatusPending:
		if requesterMsg {
			out = append(out, ActionViewRequesterMessage)
		}
		if invitation {
			out = append(out, ActionAcceptInvitation, ActionDeclineInvitation)
		} else {
			out = append(out, ActionCancelRequest)
		}
	case domain.EnrollmentStatusAccepted:
		if adminMsg {
			out = append(out, ActionViewAdminMessage)
		}
		out = append(out, ActionUnenroll)
	case domain.EnrollmentStatusRejected:
		out = append(out, ActionViewRejectionDetail, ActionRequest)
	case domain.EnrollmentStatusKicked:
		out = append(out, ActionViewRevocationDetail)
	case domain.EnrollmentStatusDeclined:
		out = append(out, ActionViewDeclineDetail)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, string(status))
	}
	return out, nil
}

func forAdmin(status domain.EnrollmentStatus, invitation, requesterMsg, adminMsg bool) ([]Action, error) {
	var out []Action
	switch status {
	case domain.EnrollmentStatusPending:
		if invitation {
			if requesterMsg {
				out = append(out, ActionViewRequesterMessage)
			}
			out = append(out, ActionCancelInvitation)
		} else {
			out = append(out, ActionApprove, ActionReject)
			if requesterMsg {
				out = append(out, ActionViewRequesterMessage)
			}
		}
	case domain.EnrollmentStatusAccepted:
		out = append(out, ActionRevoke)
	case domain.EnrollmentStatusUnenrolled, domain.EnrollmentStatusRejected,
		domain.EnrollmentStatusDeclined, domain.EnrollmentStatusKicked:
		if adminMsg {
			out = append(out, ActionViewAdminMessage)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, string(status))
	}
	return out, nil
}
