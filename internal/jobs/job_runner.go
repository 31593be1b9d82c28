package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investiga-web/internal/cache"
	"investiga-web/internal/config"
	"investiga-web/internal/logger"
	"investiga-web/internal/service"
)

const (
	JobPurgeExpiredSessions = "purge-expired-sessions"
	JobSweepQueryCache      = "sweep-query-cache"
)

// Observer records the outcome of each job run
type Observer interface {
	ObserveJob(job string, err error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	sessions service.SessionService
	cache    *cache.QueryCache // nil when the runner lives outside the web process
	observer Observer
	config   *config.Config
	timeout  time.Duration
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(sessions service.SessionService, queryCache *cache.QueryCache, observer Observer, cfg *config.Config) *JobRunner {
	return &JobRunner{
		sessions: sessions,
		cache:    queryCache,
		observer: observer,
		config:   cfg,
		timeout:  5 * time.Minute,
	}
}

func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// PurgeExpiredSessions deletes sessions whose expiry has passed
func (jr *JobRunner) PurgeExpiredSessions() error {
	return jr.runWithRecovery(JobPurgeExpiredSessions, func(ctx context.Context) error {
		n, err := jr.sessions.PurgeExpired(ctx)
		if err != nil {
			return err
		}
		logger.Info("Expired sessions purged", "count", n)
		return nil
	})
}

// SweepQueryCache drops stale entries left behind by idle sessions
func (jr *JobRunner) SweepQueryCache() error {
	return jr.runWithRecovery(JobSweepQueryCache, func(ctx context.Context) error {
		if jr.cache == nil {
			logger.Debug("No query cache to sweep")
			return nil
		}
		logger.Info("Query cache swept", "removed", jr.cache.Sweep())
		return nil
	})
}

// runWithRecovery wraps job execution with panic recovery. A panic is
// reported as the job's error.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
		if jr.observer != nil {
			jr.observer.ObserveJob(jobName, err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	start := time.Now()
	if err = jobFunc(ctx); err != nil {
		logger.Error("Job failed", "job", jobName, "error", err, "duration", time.Since(start))
		return err
	}
	logger.Info("Job completed", "job", jobName, "duration", time.Since(start))
	return nil
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() error {
	return errors.Join(jr.PurgeExpiredSessions(), jr.SweepQueryCache())
}
