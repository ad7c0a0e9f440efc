package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/status"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCancelPickupCommand(t *testing.T) {
	reason := "vendor no-show"
	cmd, err := commands.NewCancelPickupCommand(kernel.NewUUID(), &reason, kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestCancelPickupCommandHandler_Handle_KeepsDriver(t *testing.T) {
	ctx := t.Context()
	linked := testOrder(t)
	require.NoError(t, linked.SyncWithPickup(status.Assigned))
	driverID := kernel.NewUUID()
	target := assignedPickup(t, linked.ID(), driverID)
	cmd, err := commands.NewCancelPickupCommand(target.ID(), nil, kernel.NewUUID())
	require.NoError(t, err)

	pickupRepo := new(MockPickupRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickupRepository").Return(pickupRepo).Once(),
		pickupRepo.On("GetForUpdate", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, linked.ID()).Return(linked, nil).Once(),
		uow.On("PickupRepository").Return(pickupRepo).Once(),
		pickupRepo.On("Update", mock.Anything, target).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, linked).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	audit := new(MockActivityLogger)
	audit.On("Log", mock.Anything, mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()
	publisher := new(MockStatusPublisher)
	publisher.On("PublishStatusChanged", mock.Anything, mock.AnythingOfType("ports.StatusChange")).
		Return(nil).Once()

	h := commands.NewCancelPickupCommandHandler(factory, audit, publisher, discardLogger())
	cancelled, changed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, status.Cancelled, cancelled.Status())
	require.Equal(t, status.Cancelled, linked.Status())
	require.NotNil(t, cancelled.DriverID())
	require.True(t, cancelled.DriverID().IsEqual(driverID))
	uow.AssertExpectations(t)
}

func TestCancelPickupCommandHandler_Handle_AlreadyCancelledIsNoOp(t *testing.T) {
	ctx := t.Context()
	target := pendingPickup(t, kernel.NewUUID())
	require.NoError(t, target.Cancel(nil, time.Now().UTC()))
	cmd, err := commands.NewCancelPickupCommand(target.ID(), nil, kernel.NewUUID())
	require.NoError(t, err)

	pickupRepo := new(MockPickupRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickupRepository").Return(pickupRepo).Once(),
		pickupRepo.On("GetForUpdate", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	audit := new(MockActivityLogger)
	publisher := new(MockStatusPublisher)

	h := commands.NewCancelPickupCommandHandler(factory, audit, publisher, discardLogger())
	cancelled, changed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.False(t, changed)
	require.Len(t, cancelled.Events(), 1)
	audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestCancelPickupCommandHandler_Handle_CompletedCannotBeCancelled(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	target := assignedPickup(t, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, target.MarkInTransit(nil, now))
	require.NoError(t, target.Complete(nil, now))
	cmd, err := commands.NewCancelPickupCommand(target.ID(), nil, kernel.NewUUID())
	require.NoError(t, err)

	pickupRepo := new(MockPickupRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PickupRepository").Return(pickupRepo).Once(),
		pickupRepo.On("GetForUpdate", mock.Anything, target.ID()).Return(target, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPickupUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelPickupCommandHandler(
		factory, new(MockActivityLogger), new(MockStatusPublisher), discardLogger())
	_, _, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, status.ErrInvalidTransition)
}
