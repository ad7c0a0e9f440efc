package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders always load with their line items.
type OrderRepository interface {
	// Add persists a new order aggregate with its line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. Line items are immutable
	// after placement; only the status ever changes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its line items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
