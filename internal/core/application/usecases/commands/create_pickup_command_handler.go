package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrPickupAlreadyExists is returned when creating a pickup for an order that
// already has one. The order/pickup relationship is strictly 1:1.
var ErrPickupAlreadyExists = errors.New("order already has a pickup")

// CreatePickupCommandHandler creates the pickup record that tracks physical
// fulfillment of an order. Verifies the order exists and has no pickup yet.
type CreatePickupCommandHandler struct {
	uowFactory  PickupUoWFactory
	activityLog ports.ActivityLogger
	logger      *slog.Logger
}

// NewCreatePickupCommandHandler creates a handler for pickup creation.
func NewCreatePickupCommandHandler(
	uowFactory PickupUoWFactory,
	activityLog ports.ActivityLogger,
	logger *slog.Logger,
) CreatePickupCommandHandler {
	return CreatePickupCommandHandler{
		uowFactory:  uowFactory,
		activityLog: activityLog,
		logger:      logger.With("component", "create_pickup_handler"),
	}
}

// Handle validates the 1:1 order/pickup relationship and persists the new
// pending pickup in one transaction.
func (h CreatePickupCommandHandler) Handle(ctx context.Context, command CreatePickupCommand) (*pickup.Pickup, error) {
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

	if _, err := uow.OrderRepository().Get(ctx, command.OrderID()); err != nil {
		return nil, err
	}

	_, err := uow.PickupRepository().GetByOrder(ctx, command.OrderID())
	if err == nil {
		return nil, ErrPickupAlreadyExists
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	aggregate, err := pickup.NewPickup(
		command.PickupID(), command.OrderID(),
		command.Location(), command.ScheduledAt(), command.Notes())
	if err != nil {
		return nil, err
	}

	// Two concurrent creates for the same order both pass the pre-check;
	// the order_id unique index rejects the second insert.
	if err = uow.PickupRepository().Add(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrDuplicateRecord) {
			return nil, ErrPickupAlreadyExists
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit(ctx, command)
	return aggregate, nil
}

func (h CreatePickupCommandHandler) audit(ctx context.Context, command CreatePickupCommand) {
	actorID := command.ActorID()
	message := fmt.Sprintf("created pickup %s for order %s", command.PickupID(), command.OrderID())

	if err := h.activityLog.Log(ctx, &actorID, message); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit line", "error", err)
	}
}
