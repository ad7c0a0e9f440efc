package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingPickup(t *testing.T) *pickup.Pickup {
	t.Helper()
	p, err := pickup.NewPickup(kernel.NewUUID(), kernel.NewUUID(), nil, nil, nil)
	require.NoError(t, err)
	return p
}

func mustDriver(t *testing.T, name string) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(kernel.NewUUID(), name)
	require.NoError(t, err)
	return d
}

func TestPickupDispatcher_Dispatch(t *testing.T) {
	t.Run("assigns first candidate to pending pickup", func(t *testing.T) {
		p := newPendingPickup(t)
		first := mustDriver(t, "Maria Santos")
		second := mustDriver(t, "Omar Haddad")

		chosen, err := services.NewPickupDispatcher().Dispatch(
			p, []*driver.Driver{first, second}, time.Now())

		require.NoError(t, err)
		assert.True(t, first.IsEqual(chosen))
		assert.Equal(t, status.Assigned, p.Status())
		require.NotNil(t, p.DriverID())
		assert.True(t, first.ID().IsEqual(*p.DriverID()))
		assert.Len(t, p.Events(), 1)
	})

	t.Run("skips unconstructed candidates", func(t *testing.T) {
		p := newPendingPickup(t)
		valid := mustDriver(t, "Maria Santos")

		chosen, err := services.NewPickupDispatcher().Dispatch(
			p, []*driver.Driver{{}, valid}, time.Now())

		require.NoError(t, err)
		assert.True(t, valid.IsEqual(chosen))
	})

	t.Run("fails with no candidates", func(t *testing.T) {
		p := newPendingPickup(t)

		_, err := services.NewPickupDispatcher().Dispatch(p, nil, time.Now())

		require.ErrorIs(t, err, services.ErrNoAvailableDrivers)
		assert.Equal(t, status.Pending, p.Status())
		assert.Empty(t, p.Events())
	})

	t.Run("fails when pickup is not pending", func(t *testing.T) {
		p := newPendingPickup(t)
		require.NoError(t, p.AssignDriver(kernel.NewUUID(), nil, time.Now()))

		_, err := services.NewPickupDispatcher().Dispatch(
			p, []*driver.Driver{mustDriver(t, "Maria Santos")}, time.Now())

		require.ErrorIs(t, err, status.ErrInvalidTransition)
	})

	t.Run("fails for unconstructed pickup", func(t *testing.T) {
		_, err := services.NewPickupDispatcher().Dispatch(
			&pickup.Pickup{}, []*driver.Driver{mustDriver(t, "Maria Santos")}, time.Now())

		require.Error(t, err)
	})
}
