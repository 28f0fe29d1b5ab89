package commands_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/application/usecases/commands"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/promotion"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/servicearea"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, fromStatus order.Status) error {
	args := m.Called(ctx, o, fromStatus)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) Claim(
	ctx context.Context, orderID, operatorID kernel.UUID, claimedAt time.Time,
) error {
	args := m.Called(ctx, orderID, operatorID, claimedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllUnclaimed(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockServiceAreaRepository struct{ mock.Mock }

func (m *MockServiceAreaRepository) GetByZip(
	ctx context.Context, zip kernel.ZipCode,
) (*servicearea.ServiceArea, error) {
	args := m.Called(ctx, zip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*servicearea.ServiceArea), args.Error(1)
}

type MockPromotionRepository struct{ mock.Mock }

func (m *MockPromotionRepository) GetByCode(
	ctx context.Context, code string,
) (*promotion.Promotion, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*promotion.Promotion), args.Error(1)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateIntent(
	ctx context.Context, orderID kernel.UUID, totalCents int64,
) (string, error) {
	args := m.Called(ctx, orderID, totalCents)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, orderID kernel.UUID, percentage int) error {
	args := m.Called(ctx, orderID, percentage)
	return args.Error(0)
}

type MockNotificationDispatcher struct{ mock.Mock }

func (m *MockNotificationDispatcher) Notify(ctx context.Context, event ports.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// testNow is the fixed clock used across handler tests:
// a Tuesday morning well before the express cutoff.
var testNow = time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// newPlacedOrder builds a valid order in "placed" status with a next-day
// morning pickup relative to testNow.
func newPlacedOrder(t *testing.T) *order.Order {
	t.Helper()

	pickupDay := testNow.AddDate(0, 0, 1)
	pickupStart := time.Date(pickupDay.Year(), pickupDay.Month(), pickupDay.Day(), 6, 0, 0, 0, time.UTC)
	pickup, err := kernel.NewTimeWindow(pickupStart, pickupStart.Add(2*time.Hour))
	require.NoError(t, err)
	delivery, err := kernel.NewTimeWindow(pickupStart.AddDate(0, 0, 1), pickupStart.AddDate(0, 0, 1).Add(2*time.Hour))
	require.NoError(t, err)

	zip, err := kernel.NewZipCode("94103")
	require.NoError(t, err)

	items := []order.LineItem{{Label: "2 bag wash", AmountCents: 7000}}

	placed, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), zip,
		order.PickupDelivery, "wash_fold", false, 2,
		pickup, delivery, items, 7000, nil, testNow,
	)
	require.NoError(t, err)

	return placed
}

// newUnclaimedOrder builds a valid order in "unclaimed" status.
func newUnclaimedOrder(t *testing.T) *order.Order {
	t.Helper()

	o := newPlacedOrder(t)
	require.NoError(t, o.ConfirmPayment())
	return o
}

// newClaimedOrder builds a valid order claimed by the given operator.
func newClaimedOrder(t *testing.T, operatorID kernel.UUID) *order.Order {
	t.Helper()

	o := newUnclaimedOrder(t)
	require.NoError(t, o.Claim(operatorID, testNow))
	return o
}
