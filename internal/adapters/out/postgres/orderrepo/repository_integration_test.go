package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify conditional write behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// createTestOrder builds a valid placed order with a next-day morning pickup.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	now := time.Now().UTC().Truncate(time.Microsecond)
	pickupStart := now.Add(24 * time.Hour)

	pickup, err := kernel.NewTimeWindow(pickupStart, pickupStart.Add(2*time.Hour))
	suite.Require().NoError(err)
	delivery, err := kernel.NewTimeWindow(
		pickupStart.Add(24*time.Hour), pickupStart.Add(26*time.Hour))
	suite.Require().NoError(err)

	zip, err := kernel.NewZipCode("94103")
	suite.Require().NoError(err)

	items := []order.LineItem{
		{Label: "2 bag wash", AmountCents: 7000},
		{Label: "extra rinse", AmountCents: 150},
	}

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), zip,
		order.PickupDelivery, "wash_fold", false, 2,
		pickup, delivery, items, 7150, nil, now,
	)
	suite.Require().NoError(err)

	return testOrder
}

// createUnclaimedOrder persists a test order and confirms its payment so it
// sits in the unclaimed pool.
func (suite *OrderRepositoryIntegrationTestSuite) createUnclaimedOrder(ctx context.Context) *order.Order {
	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(testOrder.ConfirmPayment())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, order.Placed))

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(expected), count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTrip_PreservesAggregate() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(restored.IsEqual(testOrder))
	suite.Equal(order.Placed, restored.Status())
	suite.Equal(testOrder.TotalCents(), restored.TotalCents())
	suite.Equal(testOrder.LineItems(), restored.LineItems())
	suite.Equal(testOrder.BagCount(), restored.BagCount())
	suite.True(restored.PickupWindow().IsEqual(testOrder.PickupWindow()))
	suite.True(restored.DeliveryWindow().IsEqual(testOrder.DeliveryWindow()))
	suite.Nil(restored.Operator())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConditionalOnObservedStatus() {
	ctx := context.Background()

	testOrder := suite.createUnclaimedOrder(ctx)

	// A second writer that observed the stale "placed" status must lose.
	err := suite.repository.Update(ctx, testOrder, order.Placed)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrInvalidTransition)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Unclaimed, restored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_Success() {
	ctx := context.Background()

	testOrder := suite.createUnclaimedOrder(ctx)
	operatorID := kernel.NewUUID()
	claimedAt := time.Now().UTC().Truncate(time.Microsecond)

	err := suite.repository.Claim(ctx, testOrder.ID(), operatorID, claimedAt)
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Claimed, restored.Status())
	suite.Require().NotNil(restored.Operator())
	suite.True(restored.Operator().IsEqual(operatorID))
	suite.Require().NotNil(restored.ClaimedAt())
	suite.Equal(claimedAt, restored.ClaimedAt().UTC())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_SecondClaimerLoses() {
	ctx := context.Background()

	testOrder := suite.createUnclaimedOrder(ctx)
	winner := kernel.NewUUID()
	loser := kernel.NewUUID()

	suite.Require().NoError(suite.repository.Claim(ctx, testOrder.ID(), winner, time.Now().UTC()))

	err := suite.repository.Claim(ctx, testOrder.ID(), loser, time.Now().UTC())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrAlreadyClaimed)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.True(restored.Operator().IsEqual(winner))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_UnknownOrder() {
	ctx := context.Background()

	err := suite.repository.Claim(ctx, kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_PlacedOrderNotClaimable() {
	ctx := context.Background()

	testOrder := suite.createTestOrder() // still in placed status
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	err := suite.repository.Claim(ctx, testOrder.ID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrInvalidTransition)
	suite.Require().NotErrorIs(err, order.ErrAlreadyClaimed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_CancelledOrderNotClaimable() {
	ctx := context.Background()

	testOrder := suite.createUnclaimedOrder(ctx)
	_, err := testOrder.Cancel()
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder, order.Unclaimed))

	err = suite.repository.Claim(ctx, testOrder.ID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrInvalidTransition)
}

// TestClaim_ConcurrentClaimers_ExactlyOneWins drives many goroutines at the
// same unclaimed order and asserts the conditional update admits exactly one.
func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ConcurrentClaimers_ExactlyOneWins() {
	ctx := context.Background()

	testOrder := suite.createUnclaimedOrder(ctx)

	const claimers = 16

	var wg sync.WaitGroup
	results := make([]error, claimers)
	operators := make([]kernel.UUID, claimers)

	for i := range claimers {
		operators[i] = kernel.NewUUID()
	}

	for i := range claimers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = suite.repository.Claim(ctx, testOrder.ID(), operators[i], time.Now().UTC())
		}(i)
	}
	wg.Wait()

	var wins, losses int
	var winnerIdx int
	for i, err := range results {
		switch {
		case err == nil:
			wins++
			winnerIdx = i
		default:
			suite.Require().ErrorIs(err, order.ErrAlreadyClaimed)
			losses++
		}
	}

	suite.Equal(1, wins)
	suite.Equal(claimers-1, losses)

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Claimed, restored.Status())
	suite.True(restored.Operator().IsEqual(operators[winnerIdx]))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllUnclaimed_OldestFirst() {
	ctx := context.Background()

	first := suite.createUnclaimedOrder(ctx)
	second := suite.createUnclaimedOrder(ctx)

	// Make creation times distinct and out of insertion order.
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).
		Where("id = ?", first.ID().Bytes()).
		Update("created_at", time.Now().UTC().Add(time.Minute)).Error)

	unclaimed, err := suite.repository.GetAllUnclaimed(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(unclaimed, 2)
	suite.True(unclaimed[0].IsEqual(second))
	suite.True(unclaimed[1].IsEqual(first))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_FullLifecycleRoundTrip() {
	ctx := context.Background()

	testOrder := suite.createUnclaimedOrder(ctx)
	operatorID := kernel.NewUUID()
	now := time.Now().UTC().Truncate(time.Microsecond)

	suite.Require().NoError(suite.repository.Claim(ctx, testOrder.ID(), operatorID, now))

	claimed, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", claimed.ID(), claimed)

	for _, target := range []order.Status{
		order.InProgress, order.Washed, order.OutForDelivery, order.Completed,
	} {
		from := claimed.Status()
		suite.Require().NoError(claimed.Advance(operatorID, target, "s3://evidence/step.jpg", now))
		suite.Require().NoError(suite.repository.Update(ctx, claimed, from))
	}

	restored, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Completed, restored.Status())
	suite.Nil(restored.CurrentStep())
	suite.Require().NotNil(restored.CompletedAt())
	suite.Equal(restored.Evidence(), claimed.Evidence())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
