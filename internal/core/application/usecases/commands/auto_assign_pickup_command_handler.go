package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrNoPendingPickups is returned when the auto assignment run finds no
// pickup waiting for a driver. The job treats it as an idle tick.
var ErrNoPendingPickups = errors.New("no pending pickups")

// AutoAssignPickupCommandHandler picks the oldest pending pickup and hands it
// to the dispatcher for driver selection. One pickup per invocation.
type AutoAssignPickupCommandHandler struct {
	uowFactory  UoWFactory
	dispatcher  services.PickupDispatcher
	activityLog ports.ActivityLogger
	publisher   ports.StatusPublisher
	logger      *slog.Logger
}

// NewAutoAssignPickupCommandHandler creates a handler for scheduled
// assignment runs.
func NewAutoAssignPickupCommandHandler(
	uowFactory UoWFactory,
	dispatcher services.PickupDispatcher,
	activityLog ports.ActivityLogger,
	publisher ports.StatusPublisher,
	logger *slog.Logger,
) AutoAssignPickupCommandHandler {
	return AutoAssignPickupCommandHandler{
		uowFactory:  uowFactory,
		dispatcher:  dispatcher,
		activityLog: activityLog,
		publisher:   publisher,
		logger:      logger.With("component", "auto_assign_pickup_handler"),
	}
}

// Handle locks the oldest pending pickup, dispatches a free driver to it and
// mirrors the new status onto the order. Returns ErrNoPendingPickups or
// services.ErrNoAvailableDrivers when there is nothing to do.
func (h AutoAssignPickupCommandHandler) Handle(ctx context.Context, command AutoAssignPickupCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.PickupRepository().GetFirstPending(ctx)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ErrNoPendingPickups
		}
		return err
	}

	candidates, err := uow.DriverRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	chosen, err := h.dispatcher.Dispatch(aggregate, candidates, time.Now().UTC())
	if err != nil {
		return err
	}

	linked, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return err
	}
	if err = linked.SyncWithPickup(aggregate.Status()); err != nil {
		return err
	}

	// The candidate list is an unlocked snapshot; a concurrent manual
	// assignment can take the chosen driver first. The partial unique index
	// on open pickups rejects the second write.
	if err = uow.PickupRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrDuplicateRecord) {
			return ErrDriverUnavailable
		}
		return err
	}
	if err = uow.OrderRepository().Update(ctx, linked); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.audit(ctx, fmt.Sprintf("auto assigned driver %s to pickup %s", chosen.ID(), aggregate.ID()))
	h.notify(ctx, aggregate)
	return nil
}

func (h AutoAssignPickupCommandHandler) audit(ctx context.Context, message string) {
	if err := h.activityLog.Log(ctx, nil, message); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit line", "error", err)
	}
}

func (h AutoAssignPickupCommandHandler) notify(ctx context.Context, aggregate *pickup.Pickup) {
	change := ports.StatusChange{
		PickupID:   aggregate.ID(),
		OrderID:    aggregate.OrderID(),
		Status:     aggregate.Status(),
		OccurredAt: time.Now().UTC(),
	}

	if err := h.publisher.PublishStatusChanged(ctx, change); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish status change", "error", err)
	}
}
