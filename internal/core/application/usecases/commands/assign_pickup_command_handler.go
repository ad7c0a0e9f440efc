package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrDriverUnavailable is returned when the requested driver already has an
// open pickup. A driver carries at most one pickup at a time.
var ErrDriverUnavailable = errors.New("driver already has an open pickup")

// AssignPickupCommandHandler assigns a driver to a pending pickup. The pickup
// row is locked for the duration of the transaction so that two managers
// cannot assign the same pickup concurrently.
type AssignPickupCommandHandler struct {
	uowFactory  UoWFactory
	activityLog ports.ActivityLogger
	publisher   ports.StatusPublisher
	logger      *slog.Logger
}

// NewAssignPickupCommandHandler creates a handler for manual driver assignment.
func NewAssignPickupCommandHandler(
	uowFactory UoWFactory,
	activityLog ports.ActivityLogger,
	publisher ports.StatusPublisher,
	logger *slog.Logger,
) AssignPickupCommandHandler {
	return AssignPickupCommandHandler{
		uowFactory:  uowFactory,
		activityLog: activityLog,
		publisher:   publisher,
		logger:      logger.With("component", "assign_pickup_handler"),
	}
}

// Handle moves the pickup from pending to assigned, records the driver and
// mirrors the new status onto the order. The driver exclusivity rule is
// checked inside the same transaction that locks the pickup row.
func (h AssignPickupCommandHandler) Handle(ctx context.Context, command AssignPickupCommand) (*pickup.Pickup, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.PickupRepository().GetForUpdate(ctx, command.PickupID())
	if err != nil {
		return nil, err
	}

	candidate, err := uow.DriverRepository().Get(ctx, command.DriverID())
	if err != nil {
		return nil, err
	}

	open, err := uow.PickupRepository().GetOpenByDriver(ctx, candidate.ID())
	if err == nil && !open.ID().IsEqual(aggregate.ID()) {
		return nil, ErrDriverUnavailable
	}
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	driverID := candidate.ID()
	if err = aggregate.AssignDriver(driverID, command.Notes(), time.Now().UTC()); err != nil {
		return nil, err
	}

	linked, err := uow.OrderRepository().Get(ctx, aggregate.OrderID())
	if err != nil {
		return nil, err
	}
	if err = linked.SyncWithPickup(aggregate.Status()); err != nil {
		return nil, err
	}

	// A concurrent assignment for the same driver can slip past the
	// availability check; the partial unique index on open pickups makes
	// exactly one of the writes win.
	if err = uow.PickupRepository().Update(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrDuplicateRecord) {
			return nil, ErrDriverUnavailable
		}
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, linked); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	actorID := command.ActorID()
	h.audit(ctx, &actorID, fmt.Sprintf("assigned driver %s to pickup %s", candidate.ID(), aggregate.ID()))
	h.notify(ctx, aggregate)
	return aggregate, nil
}

func (h AssignPickupCommandHandler) audit(ctx context.Context, actorID *kernel.UUID, message string) {
	if err := h.activityLog.Log(ctx, actorID, message); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit line", "error", err)
	}
}

func (h AssignPickupCommandHandler) notify(ctx context.Context, aggregate *pickup.Pickup) {
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
