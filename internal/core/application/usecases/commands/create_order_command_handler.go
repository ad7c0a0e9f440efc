package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler persists newly placed orders.
// The order starts pending and stays pending until a pickup is created for
// it and moves through the fulfillment pipeline.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	activityLog ports.ActivityLogger
	logger      *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	activityLog ports.ActivityLogger,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		activityLog: activityLog,
		logger:      logger.With("component", "create_order_handler"),
	}
}

// Handle creates the order aggregate and persists it in one transaction.
// On success one audit line is written attributed to the acting user.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(command.OrderID(), command.CustomerID(), command.Items(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.audit(ctx, command, aggregate)
	return aggregate, nil
}

func (h CreateOrderCommandHandler) audit(ctx context.Context, command CreateOrderCommand, aggregate *order.Order) {
	actorID := command.ActorID()
	message := fmt.Sprintf("placed order %s with %d items totalling %s",
		aggregate.ID(), len(aggregate.Items()), aggregate.TotalAmount())

	if err := h.activityLog.Log(ctx, &actorID, message); err != nil {
		h.logger.ErrorContext(ctx, "failed to write audit line", "error", err)
	}
}
