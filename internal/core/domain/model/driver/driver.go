// Package driver provides the Driver read model. Drivers are owned by the
// surrounding user-management system; the fulfillment core only reads their
// identity and derives availability from open pickup assignments.
package driver

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when restoring a driver without a display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via RestoreDriver constructor")
)

// Driver is a read-only projection of a user with the driver capability.
// Availability is intentionally not a field: it is derived by querying for
// open pickups assigned to the driver, so the assignment records and the
// availability view can never drift apart.
type Driver struct {
	// id is the user reference of the driver
	id kernel.UUID
	// name is the display name shown in assignment listings
	name string
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// RestoreDriver reconstructs a Driver from the user store.
// Used by the persistence adapter; the core never creates drivers.
func RestoreDriver(id kernel.UUID, name string) (*Driver, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, ErrNameIsRequired
	}

	return &Driver{
		id:    id,
		name:  name,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Driver was properly constructed.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// IsEqual compares two drivers by their user reference.
func (d *Driver) IsEqual(other *Driver) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the driver's user reference.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's display name.
func (d *Driver) Name() string {
	return d.name
}
