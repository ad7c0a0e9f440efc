package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreatePickupCommandIsNotConstructed = errors.New(
	"CreatePickupCommand must be created via NewCreatePickupCommand constructor",
)

// CreatePickupCommand enters an order into the fulfillment pipeline by
// creating its pickup record in pending status. Each order has at most one
// pickup.
type CreatePickupCommand struct {
	pickupID    kernel.UUID
	orderID     kernel.UUID
	location    *string
	scheduledAt *time.Time
	notes       *string
	actorID     kernel.UUID
	guard       guard.ConstructorGuard
}

// NewCreatePickupCommand creates a validated pickup creation command.
func NewCreatePickupCommand(
	pickupID kernel.UUID,
	orderID kernel.UUID,
	location *string,
	scheduledAt *time.Time,
	notes *string,
	actorID kernel.UUID,
) (CreatePickupCommand, error) {
	if err := errors.Join(
		pickupID.Validate(),
		orderID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CreatePickupCommand{}, err
	}

	return CreatePickupCommand{
		pickupID:    pickupID,
		orderID:     orderID,
		location:    location,
		scheduledAt: scheduledAt,
		notes:       notes,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// PickupID returns the identifier for the new pickup.
func (c CreatePickupCommand) PickupID() kernel.UUID {
	return c.pickupID
}

// OrderID returns the order entering the pipeline.
func (c CreatePickupCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Location returns the optional pickup address or stall reference.
func (c CreatePickupCommand) Location() *string {
	return c.location
}

// ScheduledAt returns the optional agreed pickup time.
func (c CreatePickupCommand) ScheduledAt() *time.Time {
	return c.scheduledAt
}

// Notes returns the optional free-text instructions.
func (c CreatePickupCommand) Notes() *string {
	return c.notes
}

// ActorID returns the acting user for the audit trail.
func (c CreatePickupCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Validate ensures the command was created through the constructor.
func (c CreatePickupCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupCommandIsNotConstructed)
}
