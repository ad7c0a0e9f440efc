package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"
)

// StatusChange describes one committed pickup status transition, published so
// other services (customer notifications, the mobile client's push gateway)
// can react without polling.
type StatusChange struct {
	PickupID   kernel.UUID
	OrderID    kernel.UUID
	Status     status.Status
	OccurredAt time.Time
}

// StatusPublisher delivers StatusChange notifications to interested
// consumers. Publishing happens after the transaction commits and is
// best-effort: a publish failure is logged, never rolled back into the
// command result.
type StatusPublisher interface {
	PublishStatusChanged(ctx context.Context, change StatusChange) error
}
