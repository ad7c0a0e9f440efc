package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPickupQueryHandler reads a pickup row directly, joining the driver name
// for display. Uses direct SQL for optimal read performance in the CQRS
// pattern.
type GetPickupQueryHandler struct {
	db *gorm.DB
}

// NewGetPickupQueryHandler creates a handler for single pickup lookups.
func NewGetPickupQueryHandler(db *gorm.DB) GetPickupQueryHandler {
	return GetPickupQueryHandler{db: db}
}

// Handle executes the lookup. Returns an ObjectNotFoundError when no pickup
// exists with the requested ID.
func (h GetPickupQueryHandler) Handle(
	ctx context.Context,
	query GetPickupQuery,
) (GetPickupQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPickupQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.order_id,
			p.status,
			p.driver_id,
			d.name,
			p.location,
			p.scheduled_at,
			p.notes
		FROM pickups p
		LEFT JOIN drivers d ON d.id = p.driver_id
		WHERE p.id = ?
	`, query.PickupID().String()).Row()

	var (
		id          uuid.UUID
		orderID     uuid.UUID
		rawStatus   int
		driverID    *uuid.UUID
		driverName  *string
		location    *string
		scheduledAt *time.Time
		notes       *string
	)

	err := row.Scan(&id, &orderID, &rawStatus, &driverID, &driverName, &location, &scheduledAt, &notes)
	if errors.Is(err, sql.ErrNoRows) {
		return GetPickupQueryResponse{}, errs.NewObjectNotFoundError("pickupId", query.PickupID())
	}
	if err != nil {
		return GetPickupQueryResponse{}, err
	}

	response := GetPickupQueryResponse{
		Status:      status.Status(rawStatus),
		DriverName:  driverName,
		Location:    location,
		ScheduledAt: scheduledAt,
		Notes:       notes,
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetPickupQueryResponse{}, err
	}
	if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return GetPickupQueryResponse{}, err
	}
	if driverID != nil {
		assigned, idErr := kernel.UUIDFromBytes((*driverID)[:])
		if idErr != nil {
			return GetPickupQueryResponse{}, idErr
		}
		response.DriverID = &assigned
	}

	return response, nil
}
