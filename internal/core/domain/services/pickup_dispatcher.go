package services

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/pickup"
)

// ErrNoAvailableDrivers is returned when a pickup cannot be dispatched because
// the candidate driver list is empty or contains no valid driver.
var ErrNoAvailableDrivers = errors.New("no available drivers")

// PickupDispatcher is a domain service that assigns a driver to a pending
// pickup during automatic assignment runs.
//
// The candidate list must already be filtered to available drivers (drivers
// with no open pickup); the dispatcher does not re-check exclusivity, that is
// the responsibility of the transaction that loaded the candidates.
//
// Market pickups are short-haul and interchangeable, so the dispatcher takes
// the first valid candidate instead of scoring them.
type PickupDispatcher struct{}

// NewPickupDispatcher creates a new PickupDispatcher instance.
func NewPickupDispatcher() PickupDispatcher {
	return PickupDispatcher{}
}

// Dispatch assigns the first valid candidate driver to the pickup.
//
// Parameters:
//   - p: the pickup to assign (must be valid and pending)
//   - candidates: available drivers, in the order they should be considered
//   - at: assignment timestamp recorded on the tracking event
//
// Returns the chosen driver, ErrNoAvailableDrivers if no candidate is
// usable, or the transition error when the pickup is not pending.
func (d PickupDispatcher) Dispatch(
	p *pickup.Pickup,
	candidates []*driver.Driver,
	at time.Time,
) (*driver.Driver, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var chosen *driver.Driver
	for _, candidate := range candidates {
		if candidate.Validate() != nil {
			continue
		}
		chosen = candidate
		break
	}

	if chosen == nil {
		return nil, ErrNoAvailableDrivers
	}

	if err := p.AssignDriver(chosen.ID(), nil, at); err != nil {
		return nil, err
	}

	return chosen, nil
}
