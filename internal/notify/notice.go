// Package notify builds the localized notices shown after every mutation.
package notify

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"investiga-web/internal/domain"
)

// Operation names a user-visible mutation
type Operation string

const (
	OpEnrollRequest     Operation = "enroll.request"
	OpEnrollCancel      Operation = "enroll.cancel"
	OpUnenroll          Operation = "enroll.unenroll"
	OpApprove           Operation = "enroll.approve"
	OpReject            Operation = "enroll.reject"
	OpRevoke            Operation = "enroll.revoke"
	OpAcknowledgeKick   Operation = "enroll.ack_kick"
	OpAcceptInvitation  Operation = "invitation.accept"
	OpDeclineInvitation Operation = "invitation.decline"
	OpCancelInvitation  Operation = "invitation.cancel"
	OpInvite            Operation = "invitation.send"
	OpFavorite          Operation = "project.favorite"
	OpLogin             Operation = "auth.login"
	OpRegister          Operation = "auth.register"
	OpLogout            Operation = "auth.logout"
	OpForgotPassword    Operation = "auth.forgot"
	OpResetPassword     Operation = "auth.reset"
	OpVerifyEmail       Operation = "auth.verify"
	OpReportIssue       Operation = "report.issue"
)

type texts struct {
	successTitle, successMessage, failureTitle string
}

var operationTexts = map[Operation]texts{
	OpEnrollRequest:     {"Request sent", "Your enrollment request was sent.", "Could not send the enrollment request"},
	OpEnrollCancel:      {"Request cancelled", "Your enrollment request was cancelled.", "Could not cancel the enrollment request"},
	OpUnenroll:          {"Unenrolled", "You left the project.", "Could not leave the project"},
	OpApprove:           {"Request approved", "The user is now a project member.", "Could not approve the request"},
	OpReject:            {"Request rejected", "The enrollment request was rejected.", "Could not reject the request"},
	OpRevoke:            {"Membership revoked", "The user was removed from the project.", "Could not revoke the membership"},
	OpAcknowledgeKick:   {"Acknowledged", "The removal notice was dismissed.", "Could not dismiss the removal notice"},
	OpAcceptInvitation:  {"Invitation accepted", "You are now a project member.", "Could not accept the invitation"},
	OpDeclineInvitation: {"Invitation declined", "You declined the invitation.", "Could not decline the invitation"},
	OpCancelInvitation:  {"Invitation cancelled", "The invitation was withdrawn.", "Could not cancel the invitation"},
	OpInvite:            {"Invitation sent", "The user was invited to the project.", "Could not send the invitation"},
	OpFavorite:          {"Favorites updated", "Your favorites were updated.", "Could not update favorites"},
	OpLogin:             {"Welcome", "You are now logged in.", "Could not log in"},
	OpRegister:          {"Account created", "Check your inbox to verify your email.", "Could not create the account"},
	OpLogout:            {"Logged out", "See you soon.", "Something went wrong"},
	OpForgotPassword:    {"Email sent", "If the account exists you will receive a link.", "Could not send the recovery email"},
	OpResetPassword:     {"Password updated", "You can log in with your new password.", "Could not reset the password"},
	OpVerifyEmail:       {"Email verified", "Your email address was verified.", "Could not verify the email"},
	OpReportIssue:       {"Report sent", "Thank you, the team will look into it.", "Could not send the report"},
}

// Entity names the object of a save/delete/load notice
type Entity string

const (
	EntityProject            Entity = "the project"
	EntityProjects           Entity = "the projects"
	EntityInstitution        Entity = "the institution"
	EntityFacility           Entity = "the facility"
	EntityResearchDepartment Entity = "the research department"
	EntityInterest           Entity = "the interest"
	EntityUsers              Entity = "the users"
)

// UserFacing is implemented by errors that carry messages meant for the user,
// such as backend validation errors.
type UserFacing interface {
	UserMessages() []string
}

type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

var matcher = language.NewMatcher(Supported)

func For(tag language.Tag) Localizer {
	return Localizer{tag: tag, printer: message.NewPrinter(tag)}
}

// FromAcceptLanguage picks the best supported language for an Accept-Language header
func FromAcceptLanguage(header string, fallback language.Tag) Localizer {
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return For(fallback)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return For(fallback)
	}
	return For(Supported[idx])
}

func (l Localizer) Tag() language.Tag {
	return l.tag
}

// T translates a catalog key
func (l Localizer) T(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

func (l Localizer) Success(op Operation) domain.Notice {
	t, ok := operationTexts[op]
	if !ok {
		return domain.Notice{Kind: domain.NoticeSuccess, Title: l.T("Done")}
	}
	return domain.Notice{Kind: domain.NoticeSuccess, Title: l.T(t.successTitle), Message: l.T(t.successMessage)}
}

// Failure names the failed operation and explains err in the user's language
func (l Localizer) Failure(op Operation, err error) domain.Notice {
	title := l.T("Something went wrong")
	if t, ok := operationTexts[op]; ok {
		title = l.T(t.failureTitle)
	}
	return l.failure(title, err)
}

func (l Localizer) Saved(e Entity) domain.Notice {
	return domain.Notice{Kind: domain.NoticeSuccess, Title: l.T("Saved"), Message: l.T("%s was saved.", l.T(string(e)))}
}

func (l Localizer) SaveFailed(e Entity, err error) domain.Notice {
	return l.failure(l.T("Could not save %s", l.T(string(e))), err)
}

// SaveInvalid reports a form for e rejected before reaching the backend
func (l Localizer) SaveInvalid(e Entity, reason string) domain.Notice {
	return domain.Notice{Kind: domain.NoticeError, Title: l.T("Could not save %s", l.T(string(e))), Message: l.T(reason)}
}

func (l Localizer) Deleted(e Entity) domain.Notice {
	return domain.Notice{Kind: domain.NoticeSuccess, Title: l.T("Deleted"), Message: l.T("%s was deleted.", l.T(string(e)))}
}

func (l Localizer) DeleteFailed(e Entity, err error) domain.Notice {
	return l.failure(l.T("Could not delete %s", l.T(string(e))), err)
}

func (l Localizer) LoadFailed(e Entity, err error) domain.Notice {
	return l.failure(l.T("Could not load %s", l.T(string(e))), err)
}

// LoginRequired is shown when an anonymous visitor tries to request enrollment
func (l Localizer) LoginRequired() domain.Notice {
	return domain.Notice{Kind: domain.NoticeWarning, Title: l.T("Log in required"), Message: l.T("You must log in to request enrollment.")}
}

// Denied explains why a route refused the current visitor
func (l Localizer) Denied(err error) domain.Notice {
	title := l.T("Not allowed")
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		title = l.T("Log in required")
	case errors.Is(err, domain.ErrUnverifiedEmail):
		title = l.T("Email not verified")
	}
	return domain.Notice{Kind: domain.NoticeWarning, Title: title, Message: l.explain(err)}
}

// Invalid reports a form rejected before reaching the backend
func (l Localizer) Invalid(op Operation, reason string) domain.Notice {
	title := l.T("Something went wrong")
	if t, ok := operationTexts[op]; ok {
		title = l.T(t.failureTitle)
	}
	return domain.Notice{Kind: domain.NoticeError, Title: title, Message: l.T(reason)}
}

func (l Localizer) failure(title string, err error) domain.Notice {
	return domain.Notice{Kind: domain.NoticeError, Title: title, Message: l.explain(err)}
}

func (l Localizer) explain(err error) string {
	var uf UserFacing
	switch {
	case err == nil:
		return ""
	case errors.As(err, &uf) && len(uf.UserMessages()) > 0:
		return strings.Join(uf.UserMessages(), ". ")
	case errors.Is(err, domain.ErrUnauthenticated):
		return l.T("You must log in to continue.")
	case errors.Is(err, domain.ErrUnverifiedEmail):
		return l.T("Verify your email before continuing.")
	case errors.Is(err, domain.ErrForbidden):
		return l.T("You do not have permission for this action.")
	case errors.Is(err, domain.ErrNotFound):
		return l.T("The requested resource does not exist.")
	case errors.Is(err, domain.ErrInFlight):
		return l.T("This operation is already in progress.")
	default:
		return l.T("An unexpected error occurred. Please try again.")
	}
}
