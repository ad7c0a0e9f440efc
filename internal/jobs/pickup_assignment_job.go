package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// PickupAssignmentJob periodically matches the oldest pending pickup with a
// free driver. Each run assigns at most one pickup; the short interval keeps
// the pending queue draining without starving manual assignment.
type PickupAssignmentJob struct {
	handler  commands.AutoAssignPickupCommandHandler
	interval int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPickupAssignmentJob creates the assignment job. Interval is in seconds.
func NewPickupAssignmentJob(
	handler commands.AutoAssignPickupCommandHandler,
	intervalSeconds int,
	logger *slog.Logger,
) *PickupAssignmentJob {
	return &PickupAssignmentJob{
		handler:  handler,
		interval: intervalSeconds,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "pickup_assignment_job"),
	}
}

// Start schedules the assignment run. Expected idle outcomes (no pending
// pickups, no free drivers, contended queue head) are counted but not logged
// as errors.
func (j *PickupAssignmentJob) Start() error {
	spec := fmt.Sprintf("*/%d * * * * *", j.interval)
	_, err := j.cron.AddFunc(spec, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewAutoAssignPickupCommand()
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "failed to build auto assign command", "error", cmdErr)
			return
		}

		switch handleErr := j.handler.Handle(ctx, cmd); {
		case handleErr == nil:
			metrics.AssignmentRunsTotal.WithLabelValues("assigned").Inc()
		case errors.Is(handleErr, commands.ErrNoPendingPickups):
			metrics.AssignmentRunsTotal.WithLabelValues("idle").Inc()
		case errors.Is(handleErr, services.ErrNoAvailableDrivers):
			metrics.AssignmentRunsTotal.WithLabelValues("no_drivers").Inc()
		case errors.Is(handleErr, errs.ErrBusy),
			errors.Is(handleErr, commands.ErrDriverUnavailable):
			metrics.AssignmentRunsTotal.WithLabelValues("contended").Inc()
		default:
			metrics.AssignmentRunsTotal.WithLabelValues("error").Inc()
			j.logger.ErrorContext(ctx, "pickup assignment job failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "pickup assignment job started",
		"interval_seconds", j.interval)
	return nil
}

// Stop stops the pickup assignment job.
func (j *PickupAssignmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "pickup assignment job stopped")
}
