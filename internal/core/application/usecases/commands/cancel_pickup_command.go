package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelPickupCommandIsNotConstructed = errors.New(
	"CancelPickupCommand must be created via NewCancelPickupCommand constructor",
)

// CancelPickupCommand cancels a pickup from any non terminal status.
// Cancelling an already cancelled pickup succeeds without effect.
type CancelPickupCommand struct {
	pickupID kernel.UUID
	notes    *string
	actorID  kernel.UUID
	guard    guard.ConstructorGuard
}

// NewCancelPickupCommand creates a validated cancellation command.
func NewCancelPickupCommand(
	pickupID kernel.UUID,
	notes *string,
	actorID kernel.UUID,
) (CancelPickupCommand, error) {
	if err := errors.Join(
		pickupID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CancelPickupCommand{}, err
	}

	return CancelPickupCommand{
		pickupID: pickupID,
		notes:    notes,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// PickupID returns the pickup to cancel.
func (c CancelPickupCommand) PickupID() kernel.UUID {
	return c.pickupID
}

// Notes returns the optional cancellation reason.
func (c CancelPickupCommand) Notes() *string {
	return c.notes
}

// ActorID returns the acting user for the audit trail.
func (c CancelPickupCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Validate ensures the command was created through the constructor.
func (c CancelPickupCommand) Validate() error {
	return c.guard.Validate(ErrCancelPickupCommandIsNotConstructed)
}
