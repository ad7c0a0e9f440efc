// Package jobs provides the scheduled background tasks of the fulfillment
// service, built on github.com/robfig/cron/v3. The only job today is the
// automatic pickup assignment run.
package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	pickupAssignmentJob *PickupAssignmentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	autoAssignHandler commands.AutoAssignPickupCommandHandler,
	assignIntervalSeconds int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pickupAssignmentJob: NewPickupAssignmentJob(autoAssignHandler, assignIntervalSeconds, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.pickupAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start pickup assignment job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pickupAssignmentJob.Stop()
}
