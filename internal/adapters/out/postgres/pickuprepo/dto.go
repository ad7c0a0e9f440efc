// Package pickuprepo persists pickup aggregates together with their tracking
// ledgers. Pickup rows are the contention point of the system: every status
// transition locks the row, so the repository exposes locking reads that fail
// fast instead of queueing behind a long transaction.
package pickuprepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/model/status"

	"github.com/google/uuid"
)

// PickupDTO represents the database structure for persisting pickup
// aggregates. CreatedAt orders the pending queue for automatic assignment.
// The partial unique index on DriverID enforces one open pickup per driver
// at the schema level; 2 and 3 are the assigned and in_transit status values.
type PickupDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	Status      int        `gorm:"index"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index;index:uniq_pickups_open_driver,unique,where:status = 2 OR status = 3"`
	Location    *string
	ScheduledAt *time.Time
	Notes       *string
	CreatedAt   time.Time
	Events      []TrackingEventDTO `gorm:"foreignKey:PickupID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for pickup entities.
func (PickupDTO) TableName() string {
	return "pickups"
}

// TrackingEventDTO represents one immutable ledger row. Sequence numbers are
// per pickup, starting at 1, so the pickup/seq pair is the primary key.
type TrackingEventDTO struct {
	PickupID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey;autoIncrement:false"`
	Status     int
	Notes      *string
	OccurredAt time.Time
}

// TableName specifies the database table name for tracking events.
func (TrackingEventDTO) TableName() string {
	return "tracking_events"
}

func fromDomain(aggregate *pickup.Pickup) PickupDTO {
	var driverID *uuid.UUID
	if id := aggregate.DriverID(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return PickupDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		Status:      int(aggregate.Status()),
		DriverID:    driverID,
		Location:    aggregate.Location(),
		ScheduledAt: aggregate.ScheduledAt(),
		Notes:       aggregate.Notes(),
	}
}

func eventFromDomain(event pickup.TrackingEvent) TrackingEventDTO {
	return TrackingEventDTO{
		PickupID:   event.PickupID().Bytes(),
		Seq:        event.Seq(),
		Status:     int(event.Status()),
		Notes:      event.Notes(),
		OccurredAt: event.OccurredAt(),
	}
}

func toDomain(dto PickupDTO) (*pickup.Pickup, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		assigned, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &assigned
	}

	events := make([]pickup.TrackingEvent, 0, len(dto.Events))
	for _, eventDTO := range dto.Events {
		event, eventErr := eventToDomain(eventDTO)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return pickup.RestorePickup(
		id,
		orderID,
		status.Status(dto.Status),
		driverID,
		dto.Location,
		dto.ScheduledAt,
		dto.Notes,
		events,
	)
}

func eventToDomain(dto TrackingEventDTO) (pickup.TrackingEvent, error) {
	pickupID, err := kernel.UUIDFromBytes(dto.PickupID[:])
	if err != nil {
		return pickup.TrackingEvent{}, err
	}

	return pickup.NewTrackingEvent(pickupID, dto.Seq, status.Status(dto.Status), dto.Notes, dto.OccurredAt)
}
