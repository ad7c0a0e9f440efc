// Package kernel contains the shared value objects of the fulfillment domain:
// UUID identifiers and Money amounts. These types are immutable, validate
// themselves on construction, and carry no behavior beyond value semantics.
// Aggregates in the order, pickup, and driver packages build on them.
package kernel
