// Package pickup provides the Pickup aggregate: the delivery/collection
// record associated 1:1 with an order, tracking physical fulfillment through
// assignment, transit, and delivery.
//
// The package includes:
//   - Pickup: The aggregate root owning the pickup's status, driver
//     assignment, and tracking history
//   - TrackingEvent: An immutable audit record of one status change
//
// Key business rules:
//   - Status transitions follow the table in the status package; the
//     aggregate is the only code allowed to move a pickup between statuses
//   - Every successful transition appends exactly one TrackingEvent; failed
//     transitions append none
//   - Re-applying the current status is an idempotent no-op that appends no
//     event, which absorbs duplicate client retries
//   - A driver may be set only when leaving pending and is never cleared
//     afterwards, so cancelled and completed pickups keep their driver for
//     audit purposes
//   - The last tracking event's status always equals the pickup's current
//     status whenever the history is non-empty
package pickup
