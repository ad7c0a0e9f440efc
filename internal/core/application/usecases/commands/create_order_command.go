package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new customer order. The order's total is
// derived from the line items at this moment and never recomputed, freezing
// it against later catalog price changes.
type CreateOrderCommand struct {
	orderID    kernel.UUID
	customerID kernel.UUID
	items      []order.Item
	actorID    kernel.UUID
	guard      guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order placement command.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	items []order.Item,
	actorID kernel.UUID,
) (CreateOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		customerID.Validate(),
		actorID.Validate(),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	if len(items) == 0 {
		return CreateOrderCommand{}, order.ErrItemsAreRequired
	}

	return CreateOrderCommand{
		orderID:    orderID,
		customerID: customerID,
		items:      append([]order.Item(nil), items...),
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the purchasing customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Items returns the ordered line items.
func (c CreateOrderCommand) Items() []order.Item {
	return append([]order.Item(nil), c.items...)
}

// ActorID returns the acting user for the audit trail.
func (c CreateOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
