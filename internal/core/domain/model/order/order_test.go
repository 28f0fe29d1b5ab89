package order_test

import (
	"testing"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/kernel"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreatedAt = time.Date(2025, time.March, 4, 9, 0, 0, 0, time.UTC)

func testWindows(t *testing.T) (kernel.TimeWindow, kernel.TimeWindow) {
	t.Helper()

	pickup, err := kernel.NewTimeWindow(
		time.Date(2025, time.March, 5, 6, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 5, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	delivery, err := kernel.NewTimeWindow(
		time.Date(2025, time.March, 6, 6, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 6, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	return pickup, delivery
}

func testLineItems() []order.LineItem {
	return []order.LineItem{{Label: "2 bag wash", AmountCents: 7000}}
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	zip, err := kernel.NewZipCode("94103")
	require.NoError(t, err)
	pickup, delivery := testWindows(t)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), zip,
		order.PickupDelivery, "wash_fold", false, 2,
		pickup, delivery, testLineItems(), 7000, nil, testCreatedAt,
	)
	require.NoError(t, err)
	return o
}

func newUnclaimedTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o := newTestOrder(t)
	require.NoError(t, o.ConfirmPayment())
	return o
}

func newClaimedTestOrder(t *testing.T) (*order.Order, kernel.UUID) {
	t.Helper()

	o := newUnclaimedTestOrder(t)
	operatorID := kernel.NewUUID()
	require.NoError(t, o.Claim(operatorID, testCreatedAt.Add(time.Hour)))
	return o, operatorID
}

func TestNewOrder(t *testing.T) {
	zip, _ := kernel.NewZipCode("94103")

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Placed, o.Status())
		assert.Equal(t, "wash_fold", o.ServiceType())
		assert.Equal(t, 2, o.BagCount())
		assert.Equal(t, int64(7000), o.TotalCents())
		assert.Nil(t, o.Operator())
		assert.Nil(t, o.CurrentStep())
		assert.Nil(t, o.CompletedAt())
		assert.Equal(t, testCreatedAt, o.CreatedAt())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID
		pickup, delivery := testWindows(t)

		o, err := order.NewOrder(invalidID, kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 2,
			pickup, delivery, testLineItems(), 7000, nil, testCreatedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty service type", func(t *testing.T) {
		pickup, delivery := testWindows(t)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "", false, 2,
			pickup, delivery, testLineItems(), 7000, nil, testCreatedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "service type")
	})

	t.Run("should fail with zero bag count", func(t *testing.T) {
		pickup, delivery := testWindows(t)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 0,
			pickup, delivery, testLineItems(), 7000, nil, testCreatedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "bag count")
		assert.Contains(t, err.Error(), "0 is not at least 1")
	})

	t.Run("should fail when line items do not reproduce the total", func(t *testing.T) {
		pickup, delivery := testWindows(t)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 2,
			pickup, delivery, testLineItems(), 9999, nil, testCreatedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "line items sum to 7000 cents but total is 9999 cents")
	})

	t.Run("should fail when pickup window overlaps delivery window for a normal order", func(t *testing.T) {
		pickup, _ := testWindows(t)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 2,
			pickup, pickup, testLineItems(), 7000, nil, testCreatedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "delivery window")
	})

	t.Run("should accept adjacent windows for an express order", func(t *testing.T) {
		pickup, _ := testWindows(t)
		delivery, err := kernel.NewTimeWindow(pickup.End(), pickup.End().Add(4*time.Hour))
		require.NoError(t, err)

		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", true, 2,
			pickup, delivery,
			[]order.LineItem{
				{Label: "2 bag wash", AmountCents: 7000},
				{Label: "express service", AmountCents: 2000},
			}, 9000, nil, testCreatedAt)

		require.NoError(t, err)
		assert.True(t, o.IsExpress())
	})

	t.Run("should handle multiple validation errors", func(t *testing.T) {
		var invalidID kernel.UUID
		pickup, delivery := testWindows(t)

		o, err := order.NewOrder(invalidID, kernel.NewUUID(), zip,
			order.PickupDelivery, "", false, -1,
			pickup, delivery, testLineItems(), 7000, nil, testCreatedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "service type")
		assert.Contains(t, err.Error(), "bag count")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass validation for properly constructed order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Validate())
	})

	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_ConfirmPayment(t *testing.T) {
	t.Run("should move placed order to unclaimed", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ConfirmPayment()

		require.NoError(t, err)
		assert.Equal(t, order.Unclaimed, o.Status())
	})

	t.Run("should reject duplicate confirmation", func(t *testing.T) {
		o := newUnclaimedTestOrder(t)

		err := o.ConfirmPayment()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Unclaimed, o.Status())
	})
}

func TestOrder_Claim(t *testing.T) {
	t.Run("should assign the operator and record the claim instant", func(t *testing.T) {
		o := newUnclaimedTestOrder(t)
		operatorID := kernel.NewUUID()
		claimedAt := testCreatedAt.Add(time.Hour)

		err := o.Claim(operatorID, claimedAt)

		require.NoError(t, err)
		assert.Equal(t, order.Claimed, o.Status())
		require.NotNil(t, o.Operator())
		assert.True(t, o.Operator().IsEqual(operatorID))
		require.NotNil(t, o.ClaimedAt())
		assert.Equal(t, claimedAt, *o.ClaimedAt())
	})

	t.Run("should reject a second claim", func(t *testing.T) {
		o, firstOperator := newClaimedTestOrder(t)

		err := o.Claim(kernel.NewUUID(), testCreatedAt.Add(2*time.Hour))

		require.ErrorIs(t, err, order.ErrAlreadyClaimed)
		assert.True(t, o.Operator().IsEqual(firstOperator))
	})

	t.Run("should reject claim before payment confirmation", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.Claim(kernel.NewUUID(), testCreatedAt)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Nil(t, o.Operator())
	})

	t.Run("should reject claim with invalid operator ID", func(t *testing.T) {
		o := newUnclaimedTestOrder(t)
		var invalidID kernel.UUID

		err := o.Claim(invalidID, testCreatedAt)

		require.Error(t, err)
		assert.Equal(t, order.Unclaimed, o.Status())
	})
}

func TestOrder_Advance(t *testing.T) {
	t.Run("should advance through every fulfillment step", func(t *testing.T) {
		o, operatorID := newClaimedTestOrder(t)
		completedAt := testCreatedAt.Add(24 * time.Hour)

		require.NoError(t, o.Advance(operatorID, order.InProgress, "", testCreatedAt))
		require.NotNil(t, o.CurrentStep())
		assert.Equal(t, 1, *o.CurrentStep())

		require.NoError(t, o.Advance(operatorID, order.Washed, "", testCreatedAt))
		assert.Equal(t, 2, *o.CurrentStep())

		require.NoError(t, o.Advance(operatorID, order.OutForDelivery, "", testCreatedAt))
		assert.Equal(t, 3, *o.CurrentStep())

		require.NoError(t, o.Advance(operatorID, order.Completed, "", completedAt))
		assert.Equal(t, order.Completed, o.Status())
		assert.Nil(t, o.CurrentStep())
		require.NotNil(t, o.CompletedAt())
		assert.Equal(t, completedAt, *o.CompletedAt())
	})

	t.Run("should store evidence for the step being entered", func(t *testing.T) {
		o, operatorID := newClaimedTestOrder(t)

		require.NoError(t, o.Advance(operatorID, order.InProgress, "s3://evidence/pickup.jpg", testCreatedAt))

		assert.Equal(t, map[int]string{1: "s3://evidence/pickup.jpg"}, o.Evidence())
	})

	t.Run("should leave the order unchanged on a skipped step", func(t *testing.T) {
		o, operatorID := newClaimedTestOrder(t)

		err := o.Advance(operatorID, order.OutForDelivery, "", testCreatedAt)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Claimed, o.Status())
		assert.Nil(t, o.CurrentStep())
	})

	t.Run("should reject a foreign operator", func(t *testing.T) {
		o, _ := newClaimedTestOrder(t)

		err := o.Advance(kernel.NewUUID(), order.InProgress, "", testCreatedAt)

		require.ErrorIs(t, err, order.ErrOperatorMismatch)
		assert.Equal(t, order.Claimed, o.Status())
	})

	t.Run("should reject advancing an unclaimed order", func(t *testing.T) {
		o := newUnclaimedTestOrder(t)

		err := o.Advance(kernel.NewUUID(), order.InProgress, "", testCreatedAt)

		require.ErrorIs(t, err, order.ErrOperatorMismatch)
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should refund in full before payment confirmation", func(t *testing.T) {
		o := newTestOrder(t)

		percent, err := o.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.FullRefundPercent, percent)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should refund in full before a claim", func(t *testing.T) {
		o := newUnclaimedTestOrder(t)

		percent, err := o.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.FullRefundPercent, percent)
	})

	t.Run("should refund half once claimed", func(t *testing.T) {
		o, _ := newClaimedTestOrder(t)

		percent, err := o.Cancel()

		require.NoError(t, err)
		assert.Equal(t, order.PostClaimRefundPercent, percent)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("should reject cancellation once fulfillment started", func(t *testing.T) {
		o, operatorID := newClaimedTestOrder(t)
		require.NoError(t, o.Advance(operatorID, order.InProgress, "", testCreatedAt))

		percent, err := o.Cancel()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, 0, percent)
		assert.Equal(t, order.InProgress, o.Status())
	})
}

func TestOrder_Fail(t *testing.T) {
	t.Run("should fail a placed order", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.Fail())
		assert.Equal(t, order.Failed, o.Status())
	})

	t.Run("should reject failure after a claim", func(t *testing.T) {
		o, _ := newClaimedTestOrder(t)

		err := o.Fail()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Claimed, o.Status())
	})
}

func TestRestoreOrder(t *testing.T) {
	zip, _ := kernel.NewZipCode("94103")

	t.Run("should restore a claimed order", func(t *testing.T) {
		pickup, delivery := testWindows(t)
		operatorID := kernel.NewUUID()
		claimedAt := testCreatedAt.Add(time.Hour)
		step := 2

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 2,
			pickup, delivery, testLineItems(), 7000, nil,
			order.Washed, &operatorID, &claimedAt, &step,
			map[int]string{1: "s3://evidence/pickup.jpg"},
			testCreatedAt, nil,
		)

		require.NoError(t, err)
		assert.Equal(t, order.Washed, o.Status())
		assert.True(t, o.Operator().IsEqual(operatorID))
		assert.Equal(t, 2, *o.CurrentStep())
		assert.Equal(t, map[int]string{1: "s3://evidence/pickup.jpg"}, o.Evidence())
	})

	t.Run("should reject a post-claim status without an operator", func(t *testing.T) {
		pickup, delivery := testWindows(t)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 2,
			pickup, delivery, testLineItems(), 7000, nil,
			order.Claimed, nil, nil, nil, nil,
			testCreatedAt, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "no operator")
	})

	t.Run("should reject a pre-claim status with an operator", func(t *testing.T) {
		pickup, delivery := testWindows(t)
		operatorID := kernel.NewUUID()

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 2,
			pickup, delivery, testLineItems(), 7000, nil,
			order.Unclaimed, &operatorID, nil, nil, nil,
			testCreatedAt, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("should reject the Unknown status", func(t *testing.T) {
		pickup, delivery := testWindows(t)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), kernel.NewUUID(), zip,
			order.PickupDelivery, "wash_fold", false, 2,
			pickup, delivery, testLineItems(), 7000, nil,
			order.Unknown, nil, nil, nil, nil,
			testCreatedAt, nil,
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}
