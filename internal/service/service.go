package service

import (
	"context"

	"investiga-web/internal/cache"
	"investiga-web/internal/domain"
)

// SessionService owns the server-side browser session and its signed cookie token
type SessionService interface {
	New() *domain.Session
	Start(ctx context.Context) (*domain.Session, string, error) // session, token
	Resume(ctx context.Context, token string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Token(s *domain.Session) (string, error)
	End(ctx context.Context, s *domain.Session) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// AuthService forwards authentication to the backend and keeps the session in step
type AuthService interface {
	Login(ctx context.Context, s *domain.Session, creds domain.Credentials) error
	Register(ctx context.Context, s *domain.Session, reg domain.Registration) error
	Logout(ctx context.Context, s *domain.Session, scope *cache.Scope) error
	Refresh(ctx context.Context, s *domain.Session, scope *cache.Scope) (*domain.CurrentUser, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	VerifyEmail(ctx context.Context, s *domain.Session, scope *cache.Scope, token string) error
}

type ProjectService interface {
	Search(ctx context.Context, scope *cache.Scope, q domain.ProjectQuery) (*domain.ProjectPage, error)
	Get(ctx context.Context, scope *cache.Scope, id int32) (*domain.Project, error)
	Requests(ctx context.Context, scope *cache.Scope, id int32) ([]domain.EnrollmentRecord, error)
	Create(ctx context.Context, scope *cache.Scope, in domain.ProjectInput) (*domain.Project, error)
	Update(ctx context.Context, scope *cache.Scope, id int32, in domain.ProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, scope *cache.Scope, id int32) error
	SetFavorite(ctx context.Context, scope *cache.Scope, id int32, favorite bool) error
}

// ReferenceService is the cached CRUD surface of one reference-data collection
type ReferenceService[T any, In any] interface {
	List(ctx context.Context, scope *cache.Scope) ([]T, error)
	Get(ctx context.Context, id int32) (*T, error)
	Create(ctx context.Context, scope *cache.Scope, in In) (*T, error)
	Update(ctx context.Context, scope *cache.Scope, id int32, in In) (*T, error)
	Delete(ctx context.Context, scope *cache.Scope, id int32) error
}

type InstitutionService = ReferenceService[domain.Institution, domain.ReferenceInput]
type FacilityService = ReferenceService[domain.Facility, domain.ReferenceInput]
type DepartmentService = ReferenceService[domain.ResearchDepartment, domain.ReferenceInput]
type InterestService = ReferenceService[domain.Interest, domain.ReferenceInput]
type UserService = ReferenceService[domain.User, domain.User]

// ReportService delivers issue reports from the error page to the maintainers
type ReportService interface {
	SendIssueReport(ctx context.Context, report domain.IssueReport) error
}
