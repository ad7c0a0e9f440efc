// Package http exposes the fulfillment core over a JSON REST API. Handlers
// translate between wire types and commands/queries, and map the error
// taxonomy onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/metrics"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItemRequest is one line item of an order creation request.
type NewOrderItemRequest struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// NewOrderRequest is the body of POST /api/v1/orders. CustomerID defaults to
// the authenticated caller when omitted.
type NewOrderRequest struct {
	CustomerID string                `json:"customer_id,omitempty"`
	Items      []NewOrderItemRequest `json:"items"`
}

// NewPickupRequest is the body of POST /api/v1/pickups.
type NewPickupRequest struct {
	OrderID     string     `json:"order_id"`
	Location    *string    `json:"location,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// AssignPickupRequest is the body of POST /api/v1/pickups/:id/assign.
type AssignPickupRequest struct {
	DriverID string  `json:"driver_id"`
	Notes    *string `json:"notes,omitempty"`
}

// UpdateStatusRequest is the body of POST /api/v1/pickups/:id/status.
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// CancelPickupRequest is the body of POST /api/v1/pickups/:id/cancel.
type CancelPickupRequest struct {
	Notes *string `json:"notes,omitempty"`
}

// OrderItemResponse is one line item in an order reply.
type OrderItemResponse struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// OrderResponse is the wire shape of an order.
type OrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Status     string              `json:"status"`
	TotalCents int64               `json:"total_cents"`
	CreatedAt  time.Time           `json:"created_at"`
	Items      []OrderItemResponse `json:"items"`
}

// PickupResponse is the wire shape of a pickup.
type PickupResponse struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	Status      string     `json:"status"`
	DriverID    *string    `json:"driver_id,omitempty"`
	DriverName  *string    `json:"driver_name,omitempty"`
	Location    *string    `json:"location,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// TrackingEventResponse is one ledger entry in a history reply.
type TrackingEventResponse struct {
	Seq        int       `json:"seq"`
	Status     string    `json:"status"`
	Notes      *string   `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// DriverResponse is one available driver in a roster reply.
type DriverResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	createPickupHandler       commands.CreatePickupCommandHandler
	assignPickupHandler       commands.AssignPickupCommandHandler
	updatePickupStatusHandler commands.UpdatePickupStatusCommandHandler
	cancelPickupHandler       commands.CancelPickupCommandHandler

	getPickupHandler           queries.GetPickupQueryHandler
	getTrackingHistoryHandler  queries.GetTrackingHistoryQueryHandler
	getAvailableDriversHandler queries.GetAvailableDriversQueryHandler
	getOrderHandler            queries.GetOrderQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createPickupHandler commands.CreatePickupCommandHandler,
	assignPickupHandler commands.AssignPickupCommandHandler,
	updatePickupStatusHandler commands.UpdatePickupStatusCommandHandler,
	cancelPickupHandler commands.CancelPickupCommandHandler,
	getPickupHandler queries.GetPickupQueryHandler,
	getTrackingHistoryHandler queries.GetTrackingHistoryQueryHandler,
	getAvailableDriversHandler queries.GetAvailableDriversQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		createPickupHandler:        createPickupHandler,
		assignPickupHandler:        assignPickupHandler,
		updatePickupStatusHandler:  updatePickupStatusHandler,
		cancelPickupHandler:        cancelPickupHandler,
		getPickupHandler:           getPickupHandler,
		getTrackingHistoryHandler:  getTrackingHistoryHandler,
		getAvailableDriversHandler: getAvailableDriversHandler,
		getOrderHandler:            getOrderHandler,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance. Mutating pickup
// endpoints require the manager role; reads require any valid token.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", MetricsMiddleware, AuthMiddleware(jwtSecret))

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)

	api.POST("/pickups", s.CreatePickup, RequireManager)
	api.GET("/pickups/:id", s.GetPickup)
	api.GET("/pickups/:id/history", s.GetTrackingHistory)
	api.POST("/pickups/:id/assign", s.AssignPickup, RequireManager)
	api.POST("/pickups/:id/status", s.UpdatePickupStatus, RequireManager)
	api.POST("/pickups/:id/cancel", s.CancelPickup, RequireManager)

	api.GET("/drivers/available", s.GetAvailableDrivers)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	customerID := principal.ActorID
	if request.CustomerID != "" {
		parsed, err := kernel.UUIDFromString(request.CustomerID)
		if err != nil {
			return badRequest(ctx, "invalid customer_id")
		}
		customerID = parsed
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, itemReq := range request.Items {
		productID, err := kernel.UUIDFromString(itemReq.ProductID)
		if err != nil {
			return badRequest(ctx, "invalid product_id")
		}
		unitPrice, err := kernel.NewMoney(itemReq.UnitPriceCents)
		if err != nil {
			return badRequest(ctx, "invalid unit_price_cents")
		}
		item, err := order.NewItem(productID, itemReq.ProductName, itemReq.Quantity, unitPrice)
		if err != nil {
			return badRequest(ctx, err.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), customerID, items, principal.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	items := make([]OrderItemResponse, 0, len(response.Items))
	for _, item := range response.Items {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID.String(),
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPrice.Cents(),
		})
	}

	return ctx.JSON(http.StatusOK, OrderResponse{
		ID:         response.ID.String(),
		CustomerID: response.CustomerID.String(),
		Status:     response.Status.String(),
		TotalCents: response.TotalAmount.Cents(),
		CreatedAt:  response.CreatedAt,
		Items:      items,
	})
}

// CreatePickup handles POST /api/v1/pickups.
func (s *Server) CreatePickup(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	var request NewPickupRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order_id")
	}

	cmd, err := commands.NewCreatePickupCommand(
		kernel.NewUUID(), orderID, request.Location, request.ScheduledAt, request.Notes, principal.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	created, err := s.createPickupHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, pickupToResponse(created))
}

// GetPickup handles GET /api/v1/pickups/:id.
func (s *Server) GetPickup(ctx echo.Context) error {
	pickupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid pickup id")
	}

	query, err := queries.NewGetPickupQuery(pickupID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	response, err := s.getPickupHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	var driverID *string
	if response.DriverID != nil {
		raw := response.DriverID.String()
		driverID = &raw
	}

	return ctx.JSON(http.StatusOK, PickupResponse{
		ID:          response.ID.String(),
		OrderID:     response.OrderID.String(),
		Status:      response.Status.String(),
		DriverID:    driverID,
		DriverName:  response.DriverName,
		Location:    response.Location,
		ScheduledAt: response.ScheduledAt,
		Notes:       response.Notes,
	})
}

// GetTrackingHistory handles GET /api/v1/pickups/:id/history.
func (s *Server) GetTrackingHistory(ctx echo.Context) error {
	pickupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid pickup id")
	}

	query, err := queries.NewGetTrackingHistoryQuery(pickupID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	events, err := s.getTrackingHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]TrackingEventResponse, 0, len(events))
	for _, event := range events {
		response = append(response, TrackingEventResponse{
			Seq:        event.Seq,
			Status:     event.Status.String(),
			Notes:      event.Notes,
			OccurredAt: event.OccurredAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssignPickup handles POST /api/v1/pickups/:id/assign.
func (s *Server) AssignPickup(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	pickupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid pickup id")
	}

	var request AssignPickupRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	driverID, err := kernel.UUIDFromString(request.DriverID)
	if err != nil {
		return badRequest(ctx, "invalid driver_id")
	}

	cmd, err := commands.NewAssignPickupCommand(pickupID, driverID, request.Notes, principal.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	assigned, err := s.assignPickupHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	metrics.PickupTransitionsTotal.WithLabelValues(assigned.Status().String()).Inc()
	return ctx.JSON(http.StatusOK, pickupToResponse(assigned))
}

// UpdatePickupStatus handles POST /api/v1/pickups/:id/status.
func (s *Server) UpdatePickupStatus(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	pickupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid pickup id")
	}

	var request UpdateStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	target, err := status.FromString(request.Status)
	if err != nil {
		return badRequest(ctx, "unknown status: "+request.Status)
	}

	cmd, err := commands.NewUpdatePickupStatusCommand(pickupID, target, request.Notes, principal.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	updated, changed, err := s.updatePickupStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	if changed {
		metrics.PickupTransitionsTotal.WithLabelValues(updated.Status().String()).Inc()
	}
	return ctx.JSON(http.StatusOK, pickupToResponse(updated))
}

// CancelPickup handles POST /api/v1/pickups/:id/cancel.
func (s *Server) CancelPickup(ctx echo.Context) error {
	principal, _ := principalFrom(ctx)

	pickupID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid pickup id")
	}

	var request CancelPickupRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCancelPickupCommand(pickupID, request.Notes, principal.ActorID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cancelled, changed, err := s.cancelPickupHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	if changed {
		metrics.PickupTransitionsTotal.WithLabelValues(cancelled.Status().String()).Inc()
	}
	return ctx.JSON(http.StatusOK, pickupToResponse(cancelled))
}

// GetAvailableDrivers handles GET /api/v1/drivers/available.
func (s *Server) GetAvailableDrivers(ctx echo.Context) error {
	drivers, err := s.getAvailableDriversHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableDriversQuery())
	if err != nil {
		return mapError(ctx, err)
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		response = append(response, DriverResponse{
			ID:   driver.ID.String(),
			Name: driver.Name,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func orderToResponse(aggregate *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemResponse{
			ProductID:      item.ProductID().String(),
			ProductName:    item.ProductName(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
		})
	}

	return OrderResponse{
		ID:         aggregate.ID().String(),
		CustomerID: aggregate.CustomerID().String(),
		Status:     aggregate.Status().String(),
		TotalCents: aggregate.TotalAmount().Cents(),
		CreatedAt:  aggregate.CreatedAt(),
		Items:      items,
	}
}

func pickupToResponse(aggregate *pickup.Pickup) PickupResponse {
	var driverID *string
	if id := aggregate.DriverID(); id != nil {
		raw := id.String()
		driverID = &raw
	}

	return PickupResponse{
		ID:          aggregate.ID().String(),
		OrderID:     aggregate.OrderID().String(),
		Status:      aggregate.Status().String(),
		DriverID:    driverID,
		Location:    aggregate.Location(),
		ScheduledAt: aggregate.ScheduledAt(),
		Notes:       aggregate.Notes(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// mapError translates the error taxonomy onto HTTP status codes. Busy wins
// over the rest so callers back off before inspecting anything else.
func mapError(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrBusy):
		code = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, status.ErrInvalidTransition),
		errors.Is(err, commands.ErrDriverUnavailable),
		errors.Is(err, commands.ErrPickupAlreadyExists):
		code = http.StatusConflict
	case errors.Is(err, pickup.ErrDriverRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
