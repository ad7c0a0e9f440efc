package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/pickup"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testItems(t *testing.T) []order.Item {
	t.Helper()
	price, err := kernel.NewMoney(450)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Heirloom tomatoes", 3, price)
	require.NoError(t, err)
	return []order.Item{item}
}

func testOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), testItems(t), time.Now().UTC())
	require.NoError(t, err)
	return o
}

func pendingPickup(t *testing.T, orderID kernel.UUID) *pickup.Pickup {
	t.Helper()
	p, err := pickup.NewPickup(kernel.NewUUID(), orderID, nil, nil, nil)
	require.NoError(t, err)
	return p
}

func assignedPickup(t *testing.T, orderID, driverID kernel.UUID) *pickup.Pickup {
	t.Helper()
	p := pendingPickup(t, orderID)
	require.NoError(t, p.AssignDriver(driverID, nil, time.Now().UTC()))
	return p
}

func testDriver(t *testing.T) *driver.Driver {
	t.Helper()
	d, err := driver.RestoreDriver(kernel.NewUUID(), "Sam Fields")
	require.NoError(t, err)
	return d
}
