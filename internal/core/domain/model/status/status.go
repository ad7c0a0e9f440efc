package status

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is the unwrap target for all illegal status transitions.
// Callers classify transition failures with errors.Is(err, ErrInvalidTransition).
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state shared by an order and its pickup.
// It implements a state machine with a single transition table consulted by
// every code path that mutates fulfillment state.
//
// State transitions:
//
//	Pending ──> Assigned ──> InTransit ──> Completed
//	    │           │            │
//	    └───────────┴────────────┴──> Cancelled
//
// Completed and Cancelled are terminal: no further transitions are accepted.
// Re-applying the current status (including a terminal one) is treated by the
// aggregates as an idempotent no-op, not as a transition.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the pickup exists but no driver is assigned.
	Pending

	// Assigned indicates a driver has been assigned to the pickup.
	Assigned

	// InTransit indicates the driver has collected the goods and is en route.
	InTransit

	// Completed indicates the pickup was delivered. Terminal.
	Completed

	// Cancelled indicates the order was called off before completion. Terminal.
	Cancelled
)

// getStatusStrings returns the wire names for all statuses, including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		InTransit: "in_transit",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getValidStatusStrings returns only the statuses a stored record may carry.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Assigned:  "assigned",
		InTransit: "in_transit",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getTransitions returns the legal next statuses for each valid status.
// This is the only transition table in the system.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Assigned, Cancelled},
		Assigned:  {InTransit, Cancelled},
		InTransit: {Completed, Cancelled},
		Completed: {},
		Cancelled: {},
	}
}

// FromString parses a wire name ("pending", "in_transit", ...) into a Status.
// Returns an error for unrecognized names.
func FromString(s string) (Status, error) {
	for st, name := range getValidStatusStrings() {
		if name == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks that the Status is one of the five valid lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsOpen reports whether the status is valid and not terminal.
// A driver assigned to an open pickup is unavailable for other pickups.
func (s Status) IsOpen() bool {
	return s.Validate() == nil && !s.IsTerminal()
}

// CanTransitionTo reports whether the transition table allows moving from
// the current status to target. Lateral re-application (s -> s) is not a
// transition and returns false; aggregates treat it as an idempotent no-op.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a transition, returning the new status.
// Returns an InvalidTransitionError wrapping ErrInvalidTransition when the
// move is not in the transition table.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, NewInvalidTransitionError(s, target)
	}
	return target, nil
}

// Assign transitions the status to Assigned. Valid only from Pending.
func (s Status) Assign() (Status, error) {
	return s.TransitionTo(Assigned)
}

// Transit transitions the status to InTransit. Valid only from Assigned.
func (s Status) Transit() (Status, error) {
	return s.TransitionTo(InTransit)
}

// Complete transitions the status to Completed. Valid only from InTransit.
func (s Status) Complete() (Status, error) {
	return s.TransitionTo(Completed)
}

// Cancel transitions the status to Cancelled. Valid from any open status.
func (s Status) Cancel() (Status, error) {
	return s.TransitionTo(Cancelled)
}

// ValidateCanHaveDriver validates the consistency between a pickup status and
// its driver assignment.
//
// Rules:
//   - Pending pickups must not have a driver
//   - Assigned, InTransit, and Completed pickups must have a driver
//   - Cancelled pickups may carry either (the driver reference is retained
//     for audit when a cancelled pickup had one)
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if s == Cancelled {
		return nil
	}

	if hasDriver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !hasDriver && (s == Assigned || s == InTransit || s == Completed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// InvalidTransitionError reports an attempt to move between two statuses that
// the transition table does not connect.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
