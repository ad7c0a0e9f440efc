package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/model/status"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewUpdatePickupStatusCommand(t *testing.T) {
	cmd, err := commands.NewUpdatePickupStatusCommand(
		kernel.NewUUID(), status.InTransit, nil, kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.Equal(t, status.InTransit, cmd.Target())
}

func TestNewUpdatePickupStatusCommand_UnknownStatus(t *testing.T) {
	_, err := commands.NewUpdatePickupStatusCommand(
		kernel.NewUUID(), status.Unknown, nil, kernel.NewUUID())
	require.Error(t, err)
}

func TestUpdatePickupStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	linked := testOrder(t)
	require.NoError(t, linked.SyncWithPickup(status.Assigned))
	target := assignedPickup(t, linked.ID(), kernel.NewUUID())
	cmd, err := commands.NewUpdatePickupStatusCommand(
		target.ID(), status.InTransit, nil, kernel.NewUUID())
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

	h := commands.NewUpdatePickupStatusCommandHandler(factory, audit, publisher, discardLogger())
	updated, changed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, status.InTransit, updated.Status())
	require.Equal(t, status.InTransit, linked.Status())
	require.Len(t, updated.Events(), 2)
	pickupRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdatePickupStatusCommandHandler_Handle_SameStatusIsNoOp(t *testing.T) {
	ctx := t.Context()
	target := assignedPickup(t, kernel.NewUUID(), kernel.NewUUID())
	cmd, err := commands.NewUpdatePickupStatusCommand(
		target.ID(), status.Assigned, nil, kernel.NewUUID())
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

	h := commands.NewUpdatePickupStatusCommandHandler(factory, audit, publisher, discardLogger())
	updated, changed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, status.Assigned, updated.Status())
	require.Len(t, updated.Events(), 1)
	uow.AssertExpectations(t)
	audit.AssertNotCalled(t, "Log", mock.Anything, mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
}

func TestUpdatePickupStatusCommandHandler_Handle_BackwardsTransitionFails(t *testing.T) {
	ctx := t.Context()
	target := assignedPickup(t, kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, target.MarkInTransit(nil, target.Events()[0].OccurredAt()))
	cmd, err := commands.NewUpdatePickupStatusCommand(
		target.ID(), status.Pending, nil, kernel.NewUUID())
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

	h := commands.NewUpdatePickupStatusCommandHandler(
		factory, new(MockActivityLogger), new(MockStatusPublisher), discardLogger())
	_, _, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, status.ErrInvalidTransition)

	var transitionErr *status.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	require.Equal(t, status.InTransit, transitionErr.From)
	require.Equal(t, status.Pending, transitionErr.To)
}

func TestUpdatePickupStatusCommandHandler_Handle_AssignTargetNeedsDriver(t *testing.T) {
	ctx := t.Context()
	target := pendingPickup(t, kernel.NewUUID())
	cmd, err := commands.NewUpdatePickupStatusCommand(
		target.ID(), status.Assigned, nil, kernel.NewUUID())
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

	h := commands.NewUpdatePickupStatusCommandHandler(
		factory, new(MockActivityLogger), new(MockStatusPublisher), discardLogger())
	_, _, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, pickup.ErrDriverRequired)
}
