package service

import (
	"context"
	"time"

	"investiga-web/internal/domain"
	"investiga-web/internal/security"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/mock"
)

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

// MockResourceRepo
type MockResourceRepo[T any, In any] struct {
	mock.Mock
}

func (m *MockResourceRepo[T, In]) List(ctx context.Context, relations ...string) ([]T, error) {
	args := m.Called(ctx, relations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}
func (m *MockResourceRepo[T, In]) GetByID(ctx context.Context, id int32, relations ...string) (*T, error) {
	args := m.Called(ctx, id, relations)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}
func (m *MockResourceRepo[T, In]) Create(ctx context.Context, in In) (*T, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}
func (m *MockResourceRepo[T, In]) Update(ctx context.Context, id int32, in In) (*T, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}
func (m *MockResourceRepo[T, In]) Delete(ctx context.Context, id int32) error {
	return m.Called(ctx, id).Error(0)
}

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionRepo) Save(ctx context.Context, s *domain.Session) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSessionRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockSessionRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}

var testTokens = security.NewTokenManager("0123456789abcdef0123456789abcdef")
