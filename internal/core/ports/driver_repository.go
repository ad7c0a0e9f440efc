package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// DriverRepository defines the read-only contract for drivers. Driver records
// are owned by the external user-management system; the core never creates or
// mutates them.
type DriverRepository interface {
	// Get retrieves a driver by their user reference.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetAllAvailable retrieves all drivers that are not currently assigned
	// to an open pickup, ordered by name. Availability is derived from the
	// pickups table on every call rather than stored, so it can never drift
	// from the assignment records.
	GetAllAvailable(ctx context.Context) ([]*driver.Driver, error)
}
