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

var (
	// ErrPickupIsNotConstructed is returned when a Pickup was not created through
	// NewPickup or RestorePickup.
	ErrPickupIsNotConstructed = errors.New("Pickup must be created via NewPickup constructor")

	// ErrDriverRequired is returned when a plain status update targets the
	// assigned status. Reaching assigned needs a driver, so the AssignDriver
	// operation must be used instead.
	ErrDriverRequired = errors.New("a driver is required to move a pickup to assigned")

	// ErrLedgerIsInconsistent is returned when restoring a pickup whose stored
	// tracking history disagrees with its stored status.
	ErrLedgerIsInconsistent = errors.New("tracking history does not match pickup status")
)

// Pickup is the aggregate root for physical fulfillment of one order.
// It owns the pickup's status, the driver assignment, and the append-only
// tracking history, and it is the single authority for status transitions:
// no other code path may write a pickup or order status.
//
// Invariants maintained by the aggregate:
//   - status and driver assignment are consistent (status.ValidateCanHaveDriver)
//   - exactly one TrackingEvent is appended per successful transition
//   - the last event's status equals the current status while history exists
//   - the driver reference, once set, is never cleared (kept for audit)
type Pickup struct {
	// id is the unique identifier of the pickup
	id kernel.UUID

	// orderID references the owning order (1:1)
	orderID kernel.UUID

	// state is the current lifecycle status
	state status.Status

	// driverID is the assigned driver, nil until assignment
	driverID *kernel.UUID

	// location is the optional pickup address or stall reference
	location *string

	// scheduledAt is the optional agreed pickup time
	scheduledAt *time.Time

	// notes holds optional free-text instructions
	notes *string

	// events is the ordered tracking history, oldest first
	events []TrackingEvent

	// persistedEvents counts the prefix of events already stored
	persistedEvents int

	guard guard.ConstructorGuard
}

// NewPickup creates a Pickup in pending status with an empty tracking
// history. The first event is appended by the first transition, so a fresh
// pickup's history stays empty until a driver is assigned or it is cancelled.
func NewPickup(
	id kernel.UUID,
	orderID kernel.UUID,
	location *string,
	scheduledAt *time.Time,
	notes *string,
) (*Pickup, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
	); err != nil {
		return nil, err
	}

	return &Pickup{
		id:          id,
		orderID:     orderID,
		state:       status.Pending,
		location:    location,
		scheduledAt: scheduledAt,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestorePickup reconstructs a Pickup from persistence, including its stored
// tracking history. It re-checks the aggregate invariants so corrupted rows
// are rejected at the boundary instead of propagating into the domain.
func RestorePickup(
	id kernel.UUID,
	orderID kernel.UUID,
	state status.Status,
	driverID *kernel.UUID,
	location *string,
	scheduledAt *time.Time,
	notes *string,
	events []TrackingEvent,
) (*Pickup, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		state.Validate(),
		state.ValidateCanHaveDriver(driverID != nil),
	); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}

	for i, event := range events {
		if err := event.Validate(); err != nil {
			return nil, err
		}
		if event.Seq() != i+1 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"tracking history",
				fmt.Errorf("event at position %d has sequence %d", i, event.Seq()),
			)
		}
	}

	if len(events) > 0 && events[len(events)-1].Status() != state {
		return nil, ErrLedgerIsInconsistent
	}

	return &Pickup{
		id:              id,
		orderID:         orderID,
		state:           state,
		driverID:        driverID,
		location:        location,
		scheduledAt:     scheduledAt,
		notes:           notes,
		events:          append([]TrackingEvent(nil), events...),
		persistedEvents: len(events),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Pickup was properly constructed.
func (p *Pickup) Validate() error {
	if p == nil {
		return ErrPickupIsNotConstructed
	}
	return p.guard.Validate(ErrPickupIsNotConstructed)
}

// IsEqual compares two pickups by their unique identifiers.
func (p *Pickup) IsEqual(other *Pickup) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the pickup's unique identifier.
func (p *Pickup) ID() kernel.UUID {
	return p.id
}

// OrderID returns the owning order's identifier.
func (p *Pickup) OrderID() kernel.UUID {
	return p.orderID
}

// Status returns the current lifecycle status.
func (p *Pickup) Status() status.Status {
	return p.state
}

// DriverID returns the assigned driver, or nil before assignment.
// The reference is retained after completion and cancellation.
func (p *Pickup) DriverID() *kernel.UUID {
	return p.driverID
}

// Location returns the optional pickup address or stall reference.
func (p *Pickup) Location() *string {
	return p.location
}

// ScheduledAt returns the optional agreed pickup time.
func (p *Pickup) ScheduledAt() *time.Time {
	return p.scheduledAt
}

// Notes returns the optional free-text instructions.
func (p *Pickup) Notes() *string {
	return p.notes
}

// IsOpen reports whether the pickup is in a non-terminal status.
// The assigned driver of an open pickup is unavailable for other pickups.
func (p *Pickup) IsOpen() bool {
	return p.state.IsOpen()
}

// Events returns a copy of the full tracking history, oldest first.
func (p *Pickup) Events() []TrackingEvent {
	return append([]TrackingEvent(nil), p.events...)
}

// NewEvents returns the suffix of the tracking history appended since the
// pickup was restored. Repositories persist exactly these.
func (p *Pickup) NewEvents() []TrackingEvent {
	return append([]TrackingEvent(nil), p.events[p.persistedEvents:]...)
}

// AssignDriver moves the pickup from pending to assigned and records the
// driver. The exclusivity rule (one driver per open pickup) is enforced by
// the assignment use case inside its transaction; the aggregate only
// enforces the transition itself.
func (p *Pickup) AssignDriver(driverID kernel.UUID, notes *string, at time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newState, err := p.state.Assign()
	if err != nil {
		return err
	}

	if err := p.appendEvent(newState, notes, at); err != nil {
		return err
	}

	p.state = newState
	p.driverID = &driverID
	return nil
}

// MarkInTransit records that the driver has collected the goods.
func (p *Pickup) MarkInTransit(notes *string, at time.Time) error {
	newState, err := p.state.Transit()
	if err != nil {
		return err
	}

	if err := p.appendEvent(newState, notes, at); err != nil {
		return err
	}

	p.state = newState
	return nil
}

// Complete marks the pickup as delivered. The driver reference is kept;
// availability is derived from the pickup no longer being open.
func (p *Pickup) Complete(notes *string, at time.Time) error {
	newState, err := p.state.Complete()
	if err != nil {
		return err
	}

	if err := p.appendEvent(newState, notes, at); err != nil {
		return err
	}

	p.state = newState
	return nil
}

// Cancel moves the pickup to cancelled from any open status. A previously
// assigned driver stays on the record for audit and becomes available again
// by derivation.
func (p *Pickup) Cancel(notes *string, at time.Time) error {
	newState, err := p.state.Cancel()
	if err != nil {
		return err
	}

	if err := p.appendEvent(newState, notes, at); err != nil {
		return err
	}

	p.state = newState
	return nil
}

// TransitionTo performs an explicit status update to target.
//
// Re-applying the current status (terminal ones included) is an idempotent
// no-op: it returns (false, nil) and appends no event, which absorbs
// duplicate client retries. Targeting assigned is rejected with
// ErrDriverRequired because that transition carries a driver and must go
// through AssignDriver. All other targets map to exactly one transition of
// the table; unreachable targets fail with an InvalidTransitionError.
//
// The boolean result reports whether state changed, so callers can skip
// persistence, audit, and notification for no-ops.
func (p *Pickup) TransitionTo(target status.Status, notes *string, at time.Time) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	if target == p.state {
		return false, nil
	}

	switch target {
	case status.Assigned:
		if p.state.CanTransitionTo(status.Assigned) {
			return false, ErrDriverRequired
		}
		return false, status.NewInvalidTransitionError(p.state, target)
	case status.InTransit:
		if err := p.MarkInTransit(notes, at); err != nil {
			return false, err
		}
		return true, nil
	case status.Completed:
		if err := p.Complete(notes, at); err != nil {
			return false, err
		}
		return true, nil
	case status.Cancelled:
		if err := p.Cancel(notes, at); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, status.NewInvalidTransitionError(p.state, target)
	}
}

// appendEvent appends the single TrackingEvent for a successful transition.
func (p *Pickup) appendEvent(newState status.Status, notes *string, at time.Time) error {
	event, err := NewTrackingEvent(p.id, len(p.events)+1, newState, notes, at)
	if err != nil {
		return err
	}

	p.events = append(p.events, event)
	return nil
}
