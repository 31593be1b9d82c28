package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"investiga-web/internal/cache"
	"investiga-web/internal/config"
	"investiga-web/internal/domain"
	"investiga-web/internal/enrollment"
	"investiga-web/internal/metrics"
	"investiga-web/internal/repository"
	"investiga-web/internal/repository/memory"
	"investiga-web/internal/security"
	"investiga-web/internal/service"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// MockAuthRepo
type MockAuthRepo struct {
	mock.Mock
}

func (m *MockAuthRepo) Login(ctx context.Context, creds domain.Credentials) (*domain.CurrentUser, []domain.BackendCookie, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.CurrentUser), args.Get(1).([]domain.BackendCookie), args.Error(2)
}
func (m *MockAuthRepo) Register(ctx context.Context, reg domain.Registration) (*domain.CurrentUser, []domain.BackendCookie, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.CurrentUser), args.Get(1).([]domain.BackendCookie), args.Error(2)
}
func (m *MockAuthRepo) Me(ctx context.Context) (*domain.CurrentUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrentUser), args.Error(1)
}
func (m *MockAuthRepo) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
func (m *MockAuthRepo) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockAuthRepo) ResetPassword(ctx context.Context, token, password string) error {
	return m.Called(ctx, token, password).Error(0)
}
func (m *MockAuthRepo) VerifyEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// MockProjectRepo
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Search(ctx context.Context, q domain.ProjectQuery) (*domain.ProjectPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectPage), args.Error(1)
}
func (m *MockProjectRepo) GetByID(ctx context.Context, id int32) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Create(ctx context.Context, in domain.ProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Update(ctx context.Context, id int32, in domain.ProjectInput) (*domain.Project, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectRepo) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockProjectRepo) SetFavorite(ctx context.Context, id int32, favorite bool) error {
	return m.Called(ctx, id, favorite).Error(0)
}
func (m *MockProjectRepo) ListRequests(ctx context.Context, id int32) ([]domain.EnrollmentRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EnrollmentRecord), args.Error(1)
}

// MockEnrollmentRepo
type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) Request(ctx context.Context, projectID int32, message string) error {
	return m.Called(ctx, projectID, message).Error(0)
}
func (m *MockEnrollmentRepo) CancelRequest(ctx context.Context, projectID int32) error {
	return m.Called(ctx, projectID).Error(0)
}
func (m *MockEnrollmentRepo) Unenroll(ctx context.Context, projectID int32, message string) error {
	return m.Called(ctx, projectID, message).Error(0)
}
func (m *MockEnrollmentRepo) Approve(ctx context.Context, projectID, userID int32, message string) error {
	return m.Called(ctx, projectID, userID, message).Error(0)
}
func (m *MockEnrollmentRepo) Reject(ctx context.Context, projectID, userID int32, message string) error {
	return m.Called(ctx, projectID, userID, message).Error(0)
}
func (m *MockEnrollmentRepo) Revoke(ctx context.Context, projectID, userID int32, message string) error {
	return m.Called(ctx, projectID, userID, message).Error(0)
}
func (m *MockEnrollmentRepo) AcknowledgeKick(ctx context.Context, projectID int32) error {
	return m.Called(ctx, projectID).Error(0)
}
func (m *MockEnrollmentRepo) AcceptInvitation(ctx context.Context, projectID int32, message string) error {
	return m.Called(ctx, projectID, message).Error(0)
}
func (m *MockEnrollmentRepo) DeclineInvitation(ctx context.Context, projectID int32, message string) error {
	return m.Called(ctx, projectID, message).Error(0)
}
func (m *MockEnrollmentRepo) CancelInvitation(ctx context.Context, projectID, userID int32) error {
	return m.Called(ctx, projectID, userID).Error(0)
}
func (m *MockEnrollmentRepo) Invite(ctx context.Context, projectID, userID int32, message string) error {
	return m.Called(ctx, projectID, userID, message).Error(0)
}

// MockReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) SendIssueReport(ctx context.Context, r domain.IssueReport) error {
	return m.Called(ctx, r).Error(0)
}

// stubResources is an in-memory reference collection
type stubResources[T any] struct {
	mu      sync.Mutex
	items   []T
	created []domain.ReferenceInput
}

func (s *stubResources[T]) List(ctx context.Context, relations ...string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T{}, s.items...), nil
}
func (s *stubResources[T]) GetByID(ctx context.Context, id int32, relations ...string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if int(id) < 1 || int(id) > len(s.items) {
		return nil, domain.ErrNotFound
	}
	item := s.items[id-1]
	return &item, nil
}
func (s *stubResources[T]) Create(ctx context.Context, in domain.ReferenceInput) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = append(s.created, in)
	var zero T
	return &zero, nil
}
func (s *stubResources[T]) Update(ctx context.Context, id int32, in domain.ReferenceInput) (*T, error) {
	var zero T
	return &zero, nil
}
func (s *stubResources[T]) Delete(ctx context.Context, id int32) error {
	return nil
}

type stubUsers struct {
	users []domain.User
}

func (s *stubUsers) List(ctx context.Context, relations ...string) ([]domain.User, error) {
	return s.users, nil
}
func (s *stubUsers) GetByID(ctx context.Context, id int32, relations ...string) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (s *stubUsers) Create(ctx context.Context, in domain.User) (*domain.User, error) {
	return &in, nil
}
func (s *stubUsers) Update(ctx context.Context, id int32, in domain.User) (*domain.User, error) {
	return &in, nil
}
func (s *stubUsers) Delete(ctx context.Context, id int32) error { return nil }

type testEnv struct {
	handler     http.Handler
	auth        *MockAuthRepo
	projects    *MockProjectRepo
	enroll      *MockEnrollmentRepo
	reports     *MockReportService
	interests   *stubResources[domain.Interest]
	sessions    service.SessionService
	sessionRepo repository.SessionRepository
	tokens      security.TokenManager
	metrics     *metrics.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Server:  config.ServerConfig{DefaultLanguage: "es"},
		Session: config.SessionConfig{Secret: testSecret, CookieName: "investiga_session"},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	env := &testEnv{
		auth:        new(MockAuthRepo),
		projects:    new(MockProjectRepo),
		enroll:      new(MockEnrollmentRepo),
		reports:     new(MockReportService),
		interests:   &stubResources[domain.Interest]{items: []domain.Interest{{ID: 1, Name: "Robótica"}}},
		sessionRepo: memory.NewSessionRepository(),
		tokens:      security.NewTokenManager(testSecret),
		metrics:     metrics.New(),
	}
	env.sessions = service.NewSessionService(env.sessionRepo, env.tokens, time.Hour)

	catalog := &service.Catalog{
		Institutions: service.NewReferenceService[domain.Institution, domain.ReferenceInput](
			&stubResources[domain.Institution]{items: []domain.Institution{{ID: 1, Name: "UNAM"}}}, "institutions"),
		Facilities: service.NewReferenceService[domain.Facility, domain.ReferenceInput](
			&stubResources[domain.Facility]{items: []domain.Facility{{ID: 1, Name: "Ciencias"}}}, "facilities", "institution"),
		Departments: service.NewReferenceService[domain.ResearchDepartment, domain.ReferenceInput](
			&stubResources[domain.ResearchDepartment]{}, "research-departments", "facility.institution"),
		Interests: service.NewReferenceService[domain.Interest, domain.ReferenceInput](env.interests, "interests"),
	}
	users := &stubUsers{users: []domain.User{{ID: 5, Email: "ana@uni.edu", Name: "Ana", LastName: "Ruiz"}}}

	srv, err := NewServer(Deps{
		Config:     cfg,
		Sessions:   env.sessions,
		Auth:       service.NewAuthService(env.auth),
		Projects:   service.NewProjectService(env.projects),
		Catalog:    catalog,
		Users:      service.NewReferenceService[domain.User, domain.User](users, "users"),
		Reports:    env.reports,
		Dispatcher: enrollment.NewDispatcher(env.enroll, env.metrics),
		Cache:      cache.NewQueryCache(time.Minute, env.metrics),
		Tokens:     env.tokens,
		Metrics:    env.metrics,
	})
	require.NoError(t, err)
	env.handler = srv.Router()
	return env
}

// loginAs stores an authenticated session and returns its browser cookie
func (e *testEnv) loginAs(t *testing.T, user *domain.CurrentUser) *http.Cookie {
	t.Helper()
	ctx := context.Background()
	sess, token, err := e.sessions.Start(ctx)
	require.NoError(t, err)
	sess.User = user
	sess.Cookies = []domain.BackendCookie{{Name: "connect.sid", Value: "backend-" + sess.ID}}
	require.NoError(t, e.sessions.Save(ctx, sess))
	e.auth.On("Me", mock.Anything).Return(user, nil).Maybe()
	return &http.Cookie{Name: "investiga_session", Value: token}
}

func (e *testEnv) session(t *testing.T, c *http.Cookie) *domain.Session {
	t.Helper()
	sess, err := e.sessions.Resume(context.Background(), c.Value)
	require.NoError(t, err)
	return sess
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return e.serve(req, cookies...)
}

func (e *testEnv) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	return e.serve(newFormRequest(http.MethodPost, path, form), cookies...)
}

func newFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (e *testEnv) serve(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "investiga_session" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func sampleProject() *domain.Project {
	return &domain.Project{
		ID:          42,
		Name:        "Redes Neuronales",
		Description: "<p>Aprendizaje profundo</p><script>alert(1)</script>",
		StartDate:   "2024-01-01",
		Enrollments: []domain.Enrollment{
			{ID: 1, Role: domain.EnrollmentRoleLeader, User: &domain.User{ID: 7, Name: "Lucía"}},
			{ID: 2, Role: domain.EnrollmentRoleMember, User: &domain.User{ID: 9, Name: "Ana"}},
		},
	}
}
