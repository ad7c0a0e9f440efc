// Package ports defines the contracts between the fulfillment core and the
// surrounding infrastructure: repositories, the unit of work, the audit log
// sink, and the status notification publisher. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
)

// PickupRepository defines the persistence contract for pickup aggregates,
// including their tracking event history.
type PickupRepository interface {
	// Add persists a new pickup aggregate.
	// Fails if a pickup already exists for the same order (1:1 relationship).
	Add(ctx context.Context, aggregate *pickup.Pickup) error

	// Update persists changes to an existing pickup and appends its new
	// tracking events. The write is all-or-nothing within the surrounding
	// transaction.
	Update(ctx context.Context, aggregate *pickup.Pickup) error

	// Get retrieves a pickup with its full tracking history.
	Get(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error)

	// GetForUpdate retrieves a pickup while taking a row lock for the
	// remainder of the transaction, serializing concurrent transitions on
	// the same pickup. Returns an error wrapping errs.ErrBusy when the lock
	// is held by another transaction instead of blocking.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error)

	// GetByOrder retrieves the pickup belonging to an order, if any.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*pickup.Pickup, error)

	// GetOpenByDriver retrieves the open (non-terminal) pickup currently
	// assigned to the driver. Returns an ObjectNotFoundError when the driver
	// has none, which means the driver is available.
	GetOpenByDriver(ctx context.Context, driverID kernel.UUID) (*pickup.Pickup, error)

	// GetFirstPending retrieves the oldest pickup still waiting for a
	// driver, locking it like GetForUpdate. Used by the automatic
	// assignment job.
	GetFirstPending(ctx context.Context) (*pickup.Pickup, error)
}
