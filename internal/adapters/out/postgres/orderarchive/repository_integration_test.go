package orderarchive_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"fulfilment/internal/adapters/out/postgres/orderarchive"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker records the orders the archive reports as written.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id int64, aggregate any) {
	m.Called(id, aggregate)
}

// OrderArchiveIntegrationTestSuite checks the archive against a real PostgreSQL.
type OrderArchiveIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	archive   *orderarchive.GormOrderArchive
	tracker   *MockAggregateTracker
}

func (suite *OrderArchiveIntegrationTestSuite) SetupSuite() {
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

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderarchive.ArchivedOrderDTO{}))
}

func (suite *OrderArchiveIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE archived_orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.archive = orderarchive.NewGormOrderArchive(suite.db, suite.tracker)
}

func (suite *OrderArchiveIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *OrderArchiveIntegrationTestSuite) TestSave_NewOrder() {
	ctx := context.Background()
	o := suite.createOrder(1)
	suite.tracker.On("TrackAggregate", int64(1), o).Once()

	suite.Require().NoError(suite.archive.Save(ctx, o, order.Ordered))

	got, state, err := suite.archive.Get(ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(order.Ordered, state)
	suite.Equal(o.ID(), got.ID())
	suite.True(o.OrderedAt().Equal(got.OrderedAt()))
	suite.Equal(o.Items(), got.Items())
	suite.Equal("8.49", got.Total().String())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderArchiveIntegrationTestSuite) TestSave_ExistingOrderUpdatesState() {
	ctx := context.Background()
	o := suite.createOrder(2)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Twice()

	suite.Require().NoError(suite.archive.Save(ctx, o, order.Ordered))
	suite.Require().NoError(suite.archive.Save(ctx, o, order.Progressing))

	_, state, err := suite.archive.Get(ctx, 2)
	suite.Require().NoError(err)
	suite.Equal(order.Progressing, state)
	suite.assertArchivedCount(1)
}

func (suite *OrderArchiveIntegrationTestSuite) TestSave_RejectsInvalidInput() {
	ctx := context.Background()

	testCases := []struct {
		name  string
		order order.Order
		state order.State
	}{
		{"Zero value order", order.Order{}, order.Ordered},
		{"Unknown state", suite.createOrder(3), order.Unknown},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			err := suite.archive.Save(ctx, tc.order, tc.state)
			suite.Require().Error(err)
		})
	}

	suite.assertArchivedCount(0)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderArchiveIntegrationTestSuite) TestGet_NotFound() {
	_, _, err := suite.archive.Get(context.Background(), 404)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderArchiveIntegrationTestSuite) TestStates() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	suite.Require().NoError(suite.archive.Save(ctx, suite.createOrder(1), order.Collected))
	suite.Require().NoError(suite.archive.Save(ctx, suite.createOrder(2), order.Progressing))
	suite.Require().NoError(suite.archive.Save(ctx, suite.createOrder(3), order.Ordered))

	states, err := suite.archive.States(ctx)

	suite.Require().NoError(err)
	suite.Equal(map[int64]order.State{
		1: order.Collected,
		2: order.Progressing,
		3: order.Ordered,
	}, states)
}

func (suite *OrderArchiveIntegrationTestSuite) TestStates_Empty() {
	states, err := suite.archive.States(context.Background())

	suite.Require().NoError(err)
	suite.Empty(states)
}

func (suite *OrderArchiveIntegrationTestSuite) createOrder(id int64) order.Order {
	tv, err := order.NewLineItem("0001", "40 inch TV", kernel.MustMoney(599), 1)
	suite.Require().NoError(err)
	dvd, err := order.NewLineItem("0002", "DVD player", kernel.MustMoney(125), 2)
	suite.Require().NoError(err)

	orderedAt := time.Date(2026, 10, 18, 12, 30, 0, 0, time.UTC)
	o, err := order.RestoreOrder(id, orderedAt, []order.LineItem{tv, dvd})
	suite.Require().NoError(err)
	return o
}

func (suite *OrderArchiveIntegrationTestSuite) assertArchivedCount(expected int) {
	var count int64
	err := suite.db.Model(&orderarchive.ArchivedOrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderArchiveIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderArchiveIntegrationTestSuite))
}
