// Package queries contains the read side of the CQRS split. Query handlers
// bypass the domain aggregates and read the database directly, returning
// flat response models shaped for the transport layer.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPickupQueryIsNotConstructed = errors.New(
	"GetPickupQuery must be created via NewGetPickupQuery constructor",
)

// GetPickupQuery retrieves the current state of a single pickup.
type GetPickupQuery struct {
	pickupID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetPickupQuery creates a query for one pickup by ID.
func NewGetPickupQuery(pickupID kernel.UUID) (GetPickupQuery, error) {
	if err := pickupID.Validate(); err != nil {
		return GetPickupQuery{}, err
	}
	return GetPickupQuery{pickupID: pickupID, guard: guard.NewConstructorGuard()}, nil
}

// PickupID returns the requested pickup ID.
func (q GetPickupQuery) PickupID() kernel.UUID {
	return q.pickupID
}

// Validate ensures the query was created through the constructor.
func (q GetPickupQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupQueryIsNotConstructed)
}

// GetPickupQueryResponse is the read model for a pickup, including the
// assigned driver's name when one is set.
type GetPickupQueryResponse struct {
	ID          kernel.UUID
	OrderID     kernel.UUID
	Status      status.Status
	DriverID    *kernel.UUID
	DriverName  *string
	Location    *string
	ScheduledAt *time.Time
	Notes       *string
}
