package pickuprepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/pickuprepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/pickup"
	"fulfillment/internal/core/domain/model/status"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type PickupRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *pickuprepo.GormPickupRepository
	tracker    *MockAggregateTracker
}

func (suite *PickupRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&pickuprepo.PickupDTO{}, &pickuprepo.TrackingEventDTO{}))
}

func (suite *PickupRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE pickups CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.repository = pickuprepo.NewGormPickupRepository(suite.db, suite.tracker)
}

func (suite *PickupRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PickupRepositoryIntegrationTestSuite) createPendingPickup() *pickup.Pickup {
	p, err := pickup.NewPickup(kernel.NewUUID(), kernel.NewUUID(), nil, nil, nil)
	suite.Require().NoError(err)
	return p
}

func (suite *PickupRepositoryIntegrationTestSuite) TestAddAndGet_FreshPickupHasEmptyLedger() {
	ctx := context.Background()
	p := suite.createPendingPickup()

	suite.Require().NoError(suite.repository.Add(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(status.Pending, loaded.Status())
	suite.Nil(loaded.DriverID())
	suite.Empty(loaded.Events())
}

func (suite *PickupRepositoryIntegrationTestSuite) TestUpdate_AppendsOnlyNewLedgerRows() {
	ctx := context.Background()
	p := suite.createPendingPickup()
	suite.Require().NoError(suite.repository.Add(ctx, p))

	driverID := kernel.NewUUID()
	suite.Require().NoError(p.AssignDriver(driverID, nil, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, p))

	loaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(status.Assigned, loaded.Status())
	suite.Require().NotNil(loaded.DriverID())
	suite.True(loaded.DriverID().IsEqual(driverID))
	suite.Require().Len(loaded.Events(), 1)
	suite.Equal(1, loaded.Events()[0].Seq())
	suite.Equal(status.Assigned, loaded.Events()[0].Status())

	// A second transition on the reloaded aggregate appends seq 2 only.
	suite.Require().NoError(loaded.MarkInTransit(nil, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().Len(reloaded.Events(), 2)
	suite.Equal(2, reloaded.Events()[1].Seq())
	suite.Equal(status.InTransit, reloaded.Events()[1].Status())
}

func (suite *PickupRepositoryIntegrationTestSuite) TestGetByOrder() {
	ctx := context.Background()
	p := suite.createPendingPickup()
	suite.Require().NoError(suite.repository.Add(ctx, p))

	loaded, err := suite.repository.GetByOrder(ctx, p.OrderID())
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(p.ID()))

	_, err = suite.repository.GetByOrder(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PickupRepositoryIntegrationTestSuite) TestGetOpenByDriver() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	open := suite.createPendingPickup()
	suite.Require().NoError(open.AssignDriver(driverID, nil, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Add(ctx, open))

	finished := suite.createPendingPickup()
	now := time.Now().UTC()
	suite.Require().NoError(finished.AssignDriver(kernel.NewUUID(), nil, now))
	suite.Require().NoError(finished.MarkInTransit(nil, now))
	suite.Require().NoError(finished.Complete(nil, now))
	suite.Require().NoError(suite.repository.Add(ctx, finished))

	loaded, err := suite.repository.GetOpenByDriver(ctx, driverID)
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(open.ID()))

	// The completed pickup's driver is free again.
	_, err = suite.repository.GetOpenByDriver(ctx, *finished.DriverID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PickupRepositoryIntegrationTestSuite) TestGetFirstPending_OldestFirst() {
	ctx := context.Background()
	first := suite.createPendingPickup()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	time.Sleep(10 * time.Millisecond)
	second := suite.createPendingPickup()
	suite.Require().NoError(suite.repository.Add(ctx, second))

	tx := suite.db.Begin()
	defer tx.Rollback()
	txRepo := pickuprepo.NewGormPickupRepository(tx, suite.tracker)

	loaded, err := txRepo.GetFirstPending(ctx)
	suite.Require().NoError(err)
	suite.True(loaded.ID().IsEqual(first.ID()))
}

func (suite *PickupRepositoryIntegrationTestSuite) TestGetForUpdate_ContendedRowReturnsBusy() {
	ctx := context.Background()
	p := suite.createPendingPickup()
	suite.Require().NoError(suite.repository.Add(ctx, p))

	holder := suite.db.Begin()
	suite.Require().NoError(holder.Error)
	defer holder.Rollback()
	holderRepo := pickuprepo.NewGormPickupRepository(holder, suite.tracker)
	_, err := holderRepo.GetForUpdate(ctx, p.ID())
	suite.Require().NoError(err)

	contender := suite.db.Begin()
	suite.Require().NoError(contender.Error)
	defer contender.Rollback()
	contenderRepo := pickuprepo.NewGormPickupRepository(contender, suite.tracker)
	_, err = contenderRepo.GetForUpdate(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrBusy)
}

func (suite *PickupRepositoryIntegrationTestSuite) TestUpdate_SecondOpenPickupForDriverIsRejected() {
	ctx := context.Background()
	driverID := kernel.NewUUID()
	now := time.Now().UTC()

	first := suite.createPendingPickup()
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(first.AssignDriver(driverID, nil, now))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	second := suite.createPendingPickup()
	suite.Require().NoError(suite.repository.Add(ctx, second))
	suite.Require().NoError(second.AssignDriver(driverID, nil, now))
	suite.Require().ErrorIs(suite.repository.Update(ctx, second), errs.ErrDuplicateRecord)

	// Completing the first pickup leaves the index and frees the driver.
	reloaded, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(reloaded.MarkInTransit(nil, now))
	suite.Require().NoError(reloaded.Complete(nil, now))
	suite.Require().NoError(suite.repository.Update(ctx, reloaded))

	suite.Require().NoError(suite.repository.Update(ctx, second))
}

func TestPickupRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PickupRepositoryIntegrationTestSuite))
}
