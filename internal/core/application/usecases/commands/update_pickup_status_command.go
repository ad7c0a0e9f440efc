package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdatePickupStatusCommandIsNotConstructed = errors.New(
	"UpdatePickupStatusCommand must be created via NewUpdatePickupStatusCommand constructor",
)

// UpdatePickupStatusCommand requests a forward move of the pickup lifecycle.
// Re-applying the current status is a no-op and succeeds.
type UpdatePickupStatusCommand struct {
	pickupID kernel.UUID
	target   status.Status
	notes    *string
	actorID  kernel.UUID
	guard    guard.ConstructorGuard
}

// NewUpdatePickupStatusCommand creates a validated status update command.
func NewUpdatePickupStatusCommand(
	pickupID kernel.UUID,
	target status.Status,
	notes *string,
	actorID kernel.UUID,
) (UpdatePickupStatusCommand, error) {
	if err := errors.Join(
		pickupID.Validate(),
		target.Validate(),
		actorID.Validate(),
	); err != nil {
		return UpdatePickupStatusCommand{}, err
	}

	return UpdatePickupStatusCommand{
		pickupID: pickupID,
		target:   target,
		notes:    notes,
		actorID:  actorID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// PickupID returns the pickup to move.
func (c UpdatePickupStatusCommand) PickupID() kernel.UUID {
	return c.pickupID
}

// Target returns the requested status.
func (c UpdatePickupStatusCommand) Target() status.Status {
	return c.target
}

// Notes returns the optional annotation recorded on the tracking event.
func (c UpdatePickupStatusCommand) Notes() *string {
	return c.notes
}

// ActorID returns the acting user for the audit trail.
func (c UpdatePickupStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Validate ensures the command was created through the constructor.
func (c UpdatePickupStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePickupStatusCommandIsNotConstructed)
}
