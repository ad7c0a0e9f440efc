package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetTrackingHistoryQueryHandler reads the tracking ledger of a pickup in
// chronological order. A pickup with no transitions yet yields an empty
// slice, not an error.
type GetTrackingHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingHistoryQueryHandler creates a handler for history queries.
func NewGetTrackingHistoryQueryHandler(db *gorm.DB) GetTrackingHistoryQueryHandler {
	return GetTrackingHistoryQueryHandler{db: db}
}

// Handle verifies the pickup exists, then returns its ledger ordered by
// sequence number.
func (h GetTrackingHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingHistoryQuery,
) ([]GetTrackingHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists int
	err := h.db.WithContext(ctx).Raw(`
		SELECT 1 FROM pickups WHERE id = ?
	`, query.PickupID().String()).Row().Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("pickupId", query.PickupID())
	}
	if err != nil {
		return nil, err
	}

	events := make([]GetTrackingHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			status,
			notes,
			occurred_at
		FROM tracking_events
		WHERE pickup_id = ?
		ORDER BY seq
	`, query.PickupID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetTrackingHistoryQueryResponse
		var rawStatus int

		if err = rows.Scan(&event.Seq, &rawStatus, &event.Notes, &event.OccurredAt); err != nil {
			return nil, err
		}
		event.Status = status.Status(rawStatus)
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
