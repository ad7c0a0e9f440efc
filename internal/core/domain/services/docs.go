// Package services contains stateless domain services that coordinate
// behavior across aggregates. PickupDispatcher selects a driver for a
// pending pickup during automatic assignment; it operates purely on domain
// objects and leaves transactions and persistence to the application layer.
package services
