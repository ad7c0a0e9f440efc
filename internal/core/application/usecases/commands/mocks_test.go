package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockPickupRepository struct{ mock.Mock }

func (m *MockPickupRepository) Add(ctx context.Context, p *pickup.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupRepository) Update(ctx context.Context, p *pickup.Pickup) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupRepository) Get(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Pickup), args.Error(1)
}

func (m *MockPickupRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*pickup.Pickup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Pickup), args.Error(1)
}

func (m *MockPickupRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*pickup.Pickup, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Pickup), args.Error(1)
}

func (m *MockPickupRepository) GetOpenByDriver(ctx context.Context, driverID kernel.UUID) (*pickup.Pickup, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Pickup), args.Error(1)
}

func (m *MockPickupRepository) GetFirstPending(ctx context.Context) (*pickup.Pickup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickup.Pickup), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllAvailable(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) PickupRepository() ports.PickupRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockPickupUoWFactory struct{ mock.Mock }

func (m *MockPickupUoWFactory) Create() commands.PickupUoW {
	args := m.Called()
	return args.Get(0).(commands.PickupUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockActivityLogger struct{ mock.Mock }

func (m *MockActivityLogger) Log(ctx context.Context, actorID *kernel.UUID, message string) error {
	args := m.Called(ctx, actorID, message)
	return args.Error(0)
}

type MockStatusPublisher struct{ mock.Mock }

func (m *MockStatusPublisher) PublishStatusChanged(ctx context.Context, change ports.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}
