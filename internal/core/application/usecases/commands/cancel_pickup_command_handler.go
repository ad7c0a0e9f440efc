package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/core/ports"
)

// CancelPickupCommandHandler cancels a pickup and mirrors the cancellation
// onto the linked order. The assigned driver, if any, stays on the record
// for the audit trail.
type CancelPickupCommandHandler struct {
	uowFactory  PickupUoWFactory
	activityLog ports.ActivityLogger
	publisher   ports.StatusPublisher
	logger      *slog.Logger
}

// NewCancelPickupCommandHandler creates a handler for pickup cancellation.
func NewCancelPickupCommandHandler(
	uowFactory PickupUoWFactory,
	activityLog ports.ActivityLogger,
	publisher ports.StatusPublisher,
	logger *slog.Logger,
) CancelPickupCommandHandler {
	return CancelPickupCommandHandler{
		uowFactory:  uowFactory,
		activityLog: activityLog,
		publisher:   publisher,
		logger:      logger.With("component", "cancel_pickup_handler"),
	}
}

// Handle cancels the pickup under a row lock. Cancelling a completed pickup
// fails, cancelling a cancelled one is a silent success. The second return
// value reports whether state actually changed; a repeated cancel commits
// nothing and returns false.
func (h CancelPickupCommandHandler) Handle(ctx context.Context, command CancelPickupCommand) (*pickup.Pickup, bool, error) {
	if err := command.Validate(); err != nil {
		return nil, false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.PickupRepository().GetForUpdate(ctx, command.PickupID())
	if err != nil {
		return nil, false, err
	}

	changed, err := aggregate.TransitionTo(status.Cancelled, command.Notes(), time.Now().UTC())
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return aggregate, false, nil
	}

	linked, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, false, err
	}
	if err = linked.SyncWithPickup(aggregate.Status()); err != nil {
		return nil, false, err
	}

	if err = uow.PickupRepository().Update(ctx, aggregate); err != nil {
		return nil, false, err
	}
	if err = uow.OrderRepository().Update(ctx, linked); err != nil {
		return nil, false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}

	actorID := command.ActorID()
	h.audit(ctx, &actorID, fmt.Sprintf("cancelled pickup %s", aggregate.ID()))
	h.notify(ctx, aggregate)
	return aggregate, true, nil
}

func (h CancelPickupCommandHandler) audit(ctx context.Context, actorID *kernel.UUID, message string) {
	if err := h.activityLog.Log(ctx, actorID, message); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit line", "error", err)
	}
}

func (h CancelPickupCommandHandler) notify(ctx context.Context, aggregate *pickup.Pickup) {
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
