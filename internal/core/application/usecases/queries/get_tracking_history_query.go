package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/guard"
)

var ErrGetTrackingHistoryQueryIsNotConstructed = errors.New(
	"GetTrackingHistoryQuery must be created via NewGetTrackingHistoryQuery constructor",
)

// GetTrackingHistoryQuery retrieves the ordered tracking ledger of a pickup.
type GetTrackingHistoryQuery struct {
	pickupID kernel.UUID
	guard    guard.ConstructorGuard
}

// NewGetTrackingHistoryQuery creates a history query for one pickup.
func NewGetTrackingHistoryQuery(pickupID kernel.UUID) (GetTrackingHistoryQuery, error) {
	if err := pickupID.Validate(); err != nil {
		return GetTrackingHistoryQuery{}, err
	}
	return GetTrackingHistoryQuery{pickupID: pickupID, guard: guard.NewConstructorGuard()}, nil
}

// PickupID returns the requested pickup ID.
func (q GetTrackingHistoryQuery) PickupID() kernel.UUID {
	return q.pickupID
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingHistoryQueryIsNotConstructed)
}

// GetTrackingHistoryQueryResponse is one ledger entry. Seq starts at 1 and
// increases without gaps in the order the transitions happened.
type GetTrackingHistoryQueryResponse struct {
	Seq        int
	Status     status.Status
	Notes      *string
	OccurredAt time.Time
}
