package scheduler

import (
	"testing"

	"investiga-web/internal/config"
	"investiga-web/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		PurgeExpiredSessions: "0 0 * * * *",
		SweepQueryCache:      "0 */5 * * * *",
	}}

	s, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, cfg))

	require.NoError(t, err)
	assert.True(t, s.IsRunning())
	assert.Len(t, s.cron.Entries(), 2)
	s.Start()
	s.Stop()
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	cfg := &config.Config{Scheduler: config.SchedulerConfig{
		PurgeExpiredSessions: "every hour",
		SweepQueryCache:      "0 */5 * * * *",
	}}

	_, err := NewScheduler(jobs.NewJobRunner(nil, nil, nil, cfg))

	assert.Error(t, err)
}
