// Package guard provides the ConstructorGuard pattern used by commands,
// queries, and domain objects to reject zero-value instances that bypassed
// their constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded object
// was not constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. The zero value fails validation, so embedding a guard in a
// struct makes direct struct literals detectable.
//
// Example:
//
//	type AssignPickupCommand struct {
//	    pickupID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewAssignPickupCommand(pickupID kernel.UUID) (AssignPickupCommand, error) {
//	    return AssignPickupCommand{pickupID: pickupID, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
