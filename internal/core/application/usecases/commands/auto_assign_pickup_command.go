package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrAutoAssignPickupCommandIsNotConstructed = errors.New(
	"AutoAssignPickupCommand must be created via NewAutoAssignPickupCommand constructor",
)

// AutoAssignPickupCommand matches the oldest pending pickup with a free
// driver. Fired periodically by the assignment job, carries no parameters.
type AutoAssignPickupCommand struct {
	guard guard.ConstructorGuard
}

// NewAutoAssignPickupCommand creates an auto assignment command.
func NewAutoAssignPickupCommand() (AutoAssignPickupCommand, error) {
	return AutoAssignPickupCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoAssignPickupCommand) Validate() error {
	return c.guard.Validate(ErrAutoAssignPickupCommandIsNotConstructed)
}
