package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/auditlog"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	activityLog ports.ActivityLogger
	publisher   ports.StatusPublisher
	logger      *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, publisher ports.StatusPublisher, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		activityLog: auditlog.NewGormActivityLogger(gormDB),
		publisher:   publisher,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.activityLog, c.logger)
}

func (c *CompositionRoot) CreateCreatePickupCommandHandler() commands.CreatePickupCommandHandler {
	var f commands.PickupUoWFactory = FuncPickupUoWFactory(func() commands.PickupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePickupCommandHandler(f, c.activityLog, c.logger)
}

func (c *CompositionRoot) CreateAssignPickupCommandHandler() commands.AssignPickupCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPickupCommandHandler(f, c.activityLog, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdatePickupStatusCommandHandler() commands.UpdatePickupStatusCommandHandler {
	var f commands.PickupUoWFactory = FuncPickupUoWFactory(func() commands.PickupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdatePickupStatusCommandHandler(f, c.activityLog, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelPickupCommandHandler() commands.CancelPickupCommandHandler {
	var f commands.PickupUoWFactory = FuncPickupUoWFactory(func() commands.PickupUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelPickupCommandHandler(f, c.activityLog, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAutoAssignPickupCommandHandler() commands.AutoAssignPickupCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoAssignPickupCommandHandler(f, services.NewPickupDispatcher(), c.activityLog, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetPickupQueryHandler() queries.GetPickupQueryHandler {
	return queries.NewGetPickupQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingHistoryQueryHandler() queries.GetTrackingHistoryQueryHandler {
	return queries.NewGetTrackingHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableDriversQueryHandler() queries.GetAvailableDriversQueryHandler {
	return queries.NewGetAvailableDriversQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncPickupUoWFactory func() commands.PickupUoW

func (f FuncPickupUoWFactory) Create() commands.PickupUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
