package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrItemsAreRequired is returned when creating an order without line items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order represents a customer purchase at the market. It is an aggregate root
// whose mutable surface is deliberately tiny: once placed, an order's items
// and total are frozen, and its status only moves in lockstep with the status
// of the associated pickup.
//
// Order follows these invariants:
//   - Must have valid order and customer identifiers
//   - Must have at least one line item
//   - The total amount equals the sum of item subtotals computed at creation
//   - Status changes only through SyncWithPickup; an order with no pickup
//     remains pending
//   - Can only be created through NewOrder or RestoreOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID references the customer who placed the order
	customerID kernel.UUID

	// items are the purchased line items, immutable after placement
	items []Item

	// totalAmount is derived from the items at creation time and never recomputed
	totalAmount kernel.Money

	// state mirrors the status of the order's pickup
	state status.Status

	// createdAt records when the order was placed
	createdAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in pending status. The total amount is derived
// from the given items; this is the only place the total is ever computed,
// which freezes it against later catalog price changes.
//
// Parameters:
//   - id: unique order identifier
//   - customerID: reference to the purchasing customer
//   - items: at least one validated line item
//   - createdAt: placement timestamp
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(id kernel.UUID, customerID kernel.UUID, items []Item, createdAt time.Time) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}

	total := kernel.Money{}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
		total = total.Add(item.Subtotal())
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		items:         append([]Item(nil), items...),
		totalAmount:   total,
		state:         status.Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. The stored total is
// trusted as-is: it reflects the prices at placement time even if the catalog
// has changed since.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	totalAmount kernel.Money,
	state status.Status,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		state.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		customerID:    customerID,
		items:         append([]Item(nil), items...),
		totalAmount:   totalAmount,
		state:         state,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
// Call this when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the purchasing customer's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// TotalAmount returns the total derived from the items at creation time.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() status.Status {
	return o.state
}

// CreatedAt returns the placement timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// SyncWithPickup sets the order status to match the status of the order's
// pickup. The pickup aggregate has already validated the transition, so this
// only checks that the value itself is a valid status. No other code path may
// change an order's status.
func (o *Order) SyncWithPickup(pickupStatus status.Status) error {
	if err := pickupStatus.Validate(); err != nil {
		return err
	}

	o.state = pickupStatus
	return nil
}
