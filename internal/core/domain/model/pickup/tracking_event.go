package pickup

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrTrackingEventIsNotConstructed is returned when a TrackingEvent was not
// created via NewTrackingEvent.
var ErrTrackingEventIsNotConstructed = errors.New(
	"TrackingEvent must be created via NewTrackingEvent constructor",
)

// TrackingEvent is one immutable audit record of a pickup status change.
// Events are scoped to a pickup and totally ordered by a 1-based sequence
// number; they are appended by the Pickup aggregate and never mutated.
type TrackingEvent struct {
	pickupID   kernel.UUID
	seq        int
	state      status.Status
	notes      *string
	occurredAt time.Time
	guard      guard.ConstructorGuard
}

// NewTrackingEvent creates a validated tracking event.
//
// Parameters:
//   - pickupID: the owning pickup
//   - seq: 1-based position in the pickup's history
//   - state: the status the pickup reached with this event
//   - notes: optional free-text annotation
//   - occurredAt: when the transition happened
func NewTrackingEvent(
	pickupID kernel.UUID,
	seq int,
	state status.Status,
	notes *string,
	occurredAt time.Time,
) (TrackingEvent, error) {
	if err := pickupID.Validate(); err != nil {
		return TrackingEvent{}, err
	}
	if seq < 1 {
		return TrackingEvent{}, errs.NewValueIsInvalidErrorWithCause(
			"sequence",
			fmt.Errorf("%d is not a positive sequence number", seq),
		)
	}
	if err := state.Validate(); err != nil {
		return TrackingEvent{}, err
	}

	return TrackingEvent{
		pickupID:   pickupID,
		seq:        seq,
		state:      state,
		notes:      notes,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the event was created through NewTrackingEvent.
func (e TrackingEvent) Validate() error {
	return e.guard.Validate(ErrTrackingEventIsNotConstructed)
}

// PickupID returns the owning pickup's identifier.
func (e TrackingEvent) PickupID() kernel.UUID {
	return e.pickupID
}

// Seq returns the event's 1-based position in the pickup's history.
func (e TrackingEvent) Seq() int {
	return e.seq
}

// Status returns the status the pickup reached with this event.
func (e TrackingEvent) Status() status.Status {
	return e.state
}

// Notes returns the optional annotation recorded with the event.
func (e TrackingEvent) Notes() *string {
	return e.notes
}

// OccurredAt returns when the transition happened.
func (e TrackingEvent) OccurredAt() time.Time {
	return e.occurredAt
}
