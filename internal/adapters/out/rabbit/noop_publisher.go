package rabbit

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/ports"
)

// NoopStatusPublisher satisfies ports.StatusPublisher when no broker is
// configured. Each change is logged at debug level instead of published.
type NoopStatusPublisher struct {
	logger *slog.Logger
}

// NewNoopStatusPublisher creates a publisher that drops all notifications.
func NewNoopStatusPublisher(logger *slog.Logger) *NoopStatusPublisher {
	return &NoopStatusPublisher{logger: logger.With("component", "noop_status_publisher")}
}

// PublishStatusChanged logs and discards the change.
func (p *NoopStatusPublisher) PublishStatusChanged(ctx context.Context, change ports.StatusChange) error {
	p.logger.DebugContext(ctx, "status change not published, no broker configured",
		"pickup_id", change.PickupID.String(),
		"status", change.Status.String(),
	)
	return nil
}
