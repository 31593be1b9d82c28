package repository

import (
	"context"
	"time"

	"investiga-web/internal/domain"
)

// AuthRepository talks to the backend /auth endpoints. Login and Register
// return the backend credential cookies that must be replayed afterwards.
type AuthRepository interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.CurrentUser, []domain.BackendCookie, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.CurrentUser, []domain.BackendCookie, error)
	Me(ctx context.Context) (*domain.CurrentUser, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	VerifyEmail(ctx context.Context, token string) error
}

type ProjectRepository interface {
	Search(ctx context.Context, q domain.ProjectQuery) (*domain.ProjectPage, error)
	GetByID(ctx context.Context, id int32) (*domain.Project, error)
	Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, id int32, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id int32) error
	SetFavorite(ctx context.Context, id int32, favorite bool) error
	ListRequests(ctx context.Context, id int32) ([]domain.EnrollmentRecord, error)
}

// EnrollmentRepository issues enrollment status transitions. Each method is
// exactly one backend call; the backend owns the transition rules.
type EnrollmentRepository interface {
	Request(ctx context.Context, projectID int32, message string) error
	CancelRequest(ctx context.Context, projectID int32) error
	Unenroll(ctx context.Context, projectID int32, message string) error
	Approve(ctx context.Context, projectID, userID int32, message string) error
	Reject(ctx context.Context, projectID, userID int32, message string) error
	Revoke(ctx context.Context, projectID, userID int32, message string) error
	AcknowledgeKick(ctx context.Context, projectID int32) error
	AcceptInvitation(ctx context.Context, projectID int32, message string) error
	DeclineInvitation(ctx context.Context, projectID int32, message string) error
	CancelInvitation(ctx context.Context, projectID, userID int32) error
	Invite(ctx context.Context, projectID, userID int32, message string) error
}

// ResourceRepository is the CRUD surface of a reference-data collection.
// relations requests nested entities, e.g. "facility.institution".
type ResourceRepository[T any, In any] interface {
	List(ctx context.Context, relations ...string) ([]T, error)
	GetByID(ctx context.Context, id int32, relations ...string) (*T, error)
	Create(ctx context.Context, in In) (*T, error)
	Update(ctx context.Context, id int32, in In) (*T, error)
	Delete(ctx context.Context, id int32) error
}

type InstitutionRepository = ResourceRepository[domain.Institution, domain.ReferenceInput]
type FacilityRepository = ResourceRepository[domain.Facility, domain.ReferenceInput]
type DepartmentRepository = ResourceRepository[domain.ResearchDepartment, domain.ReferenceInput]
type InterestRepository = ResourceRepository[domain.Interest, domain.ReferenceInput]
type UserRepository = ResourceRepository[domain.User, domain.User]

// SessionRepository persists browser sessions server side
type SessionRepository interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
