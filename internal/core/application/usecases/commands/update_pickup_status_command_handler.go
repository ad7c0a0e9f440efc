package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/ports"
)

// UpdatePickupStatusCommandHandler moves a pickup forward through its
// lifecycle and mirrors the resulting status onto the linked order.
// No-op updates (same status) neither write a tracking event nor emit a
// notification.
type UpdatePickupStatusCommandHandler struct {
	uowFactory  PickupUoWFactory
	activityLog ports.ActivityLogger
	publisher   ports.StatusPublisher
	logger      *slog.Logger
}

// NewUpdatePickupStatusCommandHandler creates a handler for status updates.
func NewUpdatePickupStatusCommandHandler(
	uowFactory PickupUoWFactory,
	activityLog ports.ActivityLogger,
	publisher ports.StatusPublisher,
	logger *slog.Logger,
) UpdatePickupStatusCommandHandler {
	return UpdatePickupStatusCommandHandler{
		uowFactory:  uowFactory,
		activityLog: activityLog,
		publisher:   publisher,
		logger:      logger.With("component", "update_pickup_status_handler"),
	}
}

// Handle applies the transition under a row lock. Illegal transitions fail
// with an invalid transition error and leave no trace in the ledger. The
// second return value reports whether state actually changed: an idempotent
// re-application of the current status commits nothing and returns false.
func (h UpdatePickupStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdatePickupStatusCommand,
) (*pickup.Pickup, bool, error) {
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

	changed, err := aggregate.TransitionTo(command.Target(), command.Notes(), time.Now().UTC())
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
	h.audit(ctx, &actorID, fmt.Sprintf("moved pickup %s to %s", aggregate.ID(), aggregate.Status()))
	h.notify(ctx, aggregate)
	return aggregate, true, nil
}

func (h UpdatePickupStatusCommandHandler) audit(ctx context.Context, actorID *kernel.UUID, message string) {
	if err := h.activityLog.Log(ctx, actorID, message); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit line", "error", err)
	}
}

func (h UpdatePickupStatusCommandHandler) notify(ctx context.Context, aggregate *pickup.Pickup) {
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
