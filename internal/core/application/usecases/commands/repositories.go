// Package commands contains the business operations that modify fulfillment
// state. Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, then post-commit audit and
// notification side effects.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// PickupRepoFactory provides access to the pickup repository within a transaction.
	PickupRepoFactory interface {
		PickupRepository() ports.PickupRepository
	}

	// DriverRepoFactory provides access to the driver repository within a transaction.
	DriverRepoFactory interface {
		DriverRepository() ports.DriverRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PickupUoW manages transactions for pickup lifecycle operations.
	// Every pickup transition also syncs the owning order's status, so the
	// order repository is always part of the boundary.
	PickupUoW interface {
		TxManager
		PickupRepoFactory
		OrderRepoFactory
	}

	// PickupUoWFactory creates new pickup unit of work instances.
	PickupUoWFactory interface {
		Create() PickupUoW
	}

	// UoW manages transactions spanning pickups, orders, and driver lookups.
	// Used by assignment commands, which must check driver availability and
	// write the assignment in the same transaction.
	UoW interface {
		TxManager
		PickupRepoFactory
		OrderRepoFactory
		DriverRepoFactory
	}

	// UoWFactory creates new unit of work instances for assignment operations.
	UoWFactory interface {
		Create() UoW
	}
)
