// Package order provides the Order aggregate of the farmers-market
// fulfillment domain: a customer purchase consisting of immutable line items
// with a total derived from them at creation time.
//
// The package includes:
//   - Order: The aggregate root holding identity, items, total, and status
//   - Item: An immutable line item (product, quantity, unit price)
//
// Key business rules:
//   - The total amount always equals the sum of item subtotals computed at
//     creation; item prices are frozen once the order is placed
//   - Order status mirrors the status of the order's pickup and is only
//     changed through SyncWithPickup; an order without a pickup stays pending
//   - Orders are never deleted; cancellation is a terminal status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
