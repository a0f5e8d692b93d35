package cron

import (
	"Picgram/internal/config"
	"Picgram/internal/job"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RegisterJobs(t *testing.T) {
	m := NewCronManager(
		config.CronConfig{PostCounter: "@every 1m", PostCounterFull: "@daily"},
		job.NewPostCounterJob(nil),
		job.NewPostCounterFullJob(nil),
		job.NewMediaOrphanJob(nil),
	)
	require.NoError(t, m.RegisterJobs())
	assert.Equal(t, 2, m.Entries())
}

func TestManager_BadSpec(t *testing.T) {
	m := NewCronManager(
		config.CronConfig{PostCounter: "every minute"},
		job.NewPostCounterJob(nil),
		job.NewPostCounterFullJob(nil),
		job.NewMediaOrphanJob(nil),
	)
	assert.Error(t, m.RegisterJobs())
}
