package jobs

import (
	"fmt"
	"log/slog"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	unclaimedReminderJob *UnclaimedReminderJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	uowFactory ports.UnitOfWorkFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		unclaimedReminderJob: NewUnclaimedReminderJob(uowFactory, dispatcher, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.unclaimedReminderJob.Start(); err != nil {
		return fmt.Errorf("failed to start unclaimed reminder job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.unclaimedReminderJob.Stop()
}
