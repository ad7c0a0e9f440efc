package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignPickupCommandIsNotConstructed = errors.New(
	"AssignPickupCommand must be created via NewAssignPickupCommand constructor",
)

// AssignPickupCommand assigns a specific driver to a pending pickup.
// This is the manual assignment path used by market managers; the automatic
// path is AutoAssignPickupCommand.
type AssignPickupCommand struct {
	pickupID kernel.UUID
	driverID kernel.UUID
	notes    *string
	actorID  kernel.UUID
	guard    guard.ConstructorGuard
}

// NewAssignPickupCommand creates a validated assignment command.
func NewAssignPickupCommand(
	pickupID kernel.UUID,
	driverID kernel.UUID,
	notes *string,
	actorID kernel.UUID,
) (AssignPickupCommand, error) {
	if err := errors.Join(
		pickupID.Validate(),
		driverID.Validate(),
		actorID.Validate(),
	); err != nil {
		return AssignPickupCommand{}, err
	}

	return AssignPickupCommand{
		pickupID: pickupID,
		driverID: driverID,
		notes:    notes,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// PickupID returns the pickup to assign.
func (c AssignPickupCommand) PickupID() kernel.UUID {
	return c.pickupID
}

// DriverID returns the driver chosen by the manager.
func (c AssignPickupCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Notes returns the optional annotation recorded on the tracking event.
func (c AssignPickupCommand) Notes() *string {
	return c.notes
}

// ActorID returns the acting user for the audit trail.
func (c AssignPickupCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Validate ensures the command was created through the constructor.
func (c AssignPickupCommand) Validate() error {
	return c.guard.Validate(ErrAssignPickupCommandIsNotConstructed)
}
