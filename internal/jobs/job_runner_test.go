package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"investiga-web/internal/cache"
	"investiga-web/internal/config"
	"investiga-web/internal/repository/memory"
	"investiga-web/internal/security"
	"investiga-web/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockObserver struct {
	mock.Mock
}

func (m *MockObserver) ObserveJob(job string, err error) {
	m.Called(job, err)
}

type failingSessions struct {
	service.SessionService
	err   error
	panic bool
}

func (f *failingSessions) PurgeExpired(ctx context.Context) (int64, error) {
	if f.panic {
		panic("boom")
	}
	return 0, f.err
}

func TestPurgeExpiredSessions(t *testing.T) {
	repo := memory.NewSessionRepository()
	sessions := service.NewSessionService(repo, security.NewTokenManager("0123456789abcdef0123456789abcdef"), time.Millisecond)
	ctx := context.Background()
	sess, _, err := sessions.Start(ctx)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(ctx, sess))
	time.Sleep(5 * time.Millisecond)

	observer := new(MockObserver)
	observer.On("ObserveJob", JobPurgeExpiredSessions, nil).Once()

	require.NoError(t, NewJobRunner(sessions, nil, observer, &config.Config{}).PurgeExpiredSessions())

	_, err = repo.Get(ctx, sess.ID)
	assert.Error(t, err)
	observer.AssertExpectations(t)
}

func TestPurgeExpiredSessions_Failure(t *testing.T) {
	observer := new(MockObserver)
	observer.On("ObserveJob", JobPurgeExpiredSessions, mock.MatchedBy(func(err error) bool {
		return errors.Is(err, assert.AnError)
	})).Once()

	err := NewJobRunner(&failingSessions{err: assert.AnError}, nil, observer, &config.Config{}).PurgeExpiredSessions()
	assert.ErrorIs(t, err, assert.AnError)

	observer.AssertExpectations(t)
}

func TestRunWithRecovery(t *testing.T) {
	observer := new(MockObserver)
	observer.On("ObserveJob", JobPurgeExpiredSessions, mock.MatchedBy(func(err error) bool {
		return err != nil && err.Error() == "job panicked: boom"
	})).Once()

	var err error
	assert.NotPanics(t, func() {
		err = NewJobRunner(&failingSessions{panic: true}, nil, observer, &config.Config{}).PurgeExpiredSessions()
	})
	assert.EqualError(t, err, "job panicked: boom")
	observer.AssertExpectations(t)
}

func TestSweepQueryCache(t *testing.T) {
	qc := cache.NewQueryCache(time.Millisecond, nil)
	_, err := qc.Scoped("s1").Fetch(context.Background(), "projects", func(ctx context.Context) (any, error) {
		return "page", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, qc.Len())
	time.Sleep(5 * time.Millisecond)

	observer := new(MockObserver)
	observer.On("ObserveJob", JobSweepQueryCache, nil).Twice()

	jr := NewJobRunner(&failingSessions{}, qc, observer, &config.Config{})
	require.NoError(t, jr.SweepQueryCache())
	assert.Equal(t, 0, qc.Len())

	// Runners outside the web process have no cache
	assert.NoError(t, NewJobRunner(&failingSessions{}, nil, observer, &config.Config{}).SweepQueryCache())
	observer.AssertExpectations(t)
}

func TestRunAll_ReportsFailure(t *testing.T) {
	observer := new(MockObserver)
	observer.On("ObserveJob", JobPurgeExpiredSessions, mock.Anything).Once()
	observer.On("ObserveJob", JobSweepQueryCache, nil).Once()

	err := NewJobRunner(&failingSessions{err: assert.AnError}, nil, observer, &config.Config{}).RunAll()

	assert.ErrorIs(t, err, assert.AnError)
	observer.AssertExpectations(t)
}
