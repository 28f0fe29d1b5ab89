package order_test

import (
	"fmt"
	"testing"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/domain/model/order"
	"github.com/Info-FreshDrop/freshdrop-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Placed,
			order.Unclaimed,
			order.Claimed,
			order.InProgress,
			order.Washed,
			order.OutForDelivery,
			order.Completed,
			order.Cancelled,
			order.Failed,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				err := status.Validate()
				require.NoError(t, err)
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "0 is not a valid status")
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Status(-1),
			order.Status(10),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire names for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Placed, "placed"},
			{order.Unclaimed, "unclaimed"},
			{order.Claimed, "claimed"},
			{order.InProgress, "in_progress"},
			{order.Washed, "washed"},
			{order.OutForDelivery, "out_for_delivery"},
			{order.Completed, "completed"},
			{order.Cancelled, "cancelled"},
			{order.Failed, "failed"},
		}

		for _, tc := range testCases {
			t.Run(fmt.Sprintf("should return %s for %d", tc.expected, int(tc.status)), func(t *testing.T) {
				assert.Equal(t, tc.expected, tc.status.String())
			})
		}
	})

	t.Run("should return unknown for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(-1).String())
		assert.Equal(t, "unknown", order.Status(100).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round-trip every valid status", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Placed,
			order.Unclaimed,
			order.Claimed,
			order.InProgress,
			order.Washed,
			order.OutForDelivery,
			order.Completed,
			order.Cancelled,
			order.Failed,
		}

		for _, status := range validStatuses {
			parsed, err := order.StatusFromString(status.String())

			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("should reject unrecognized strings", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "shipped", "PLACED"} {
			parsed, err := order.StatusFromString(s)

			require.Error(t, err)
			assert.Equal(t, order.Unknown, parsed)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should report terminal statuses", func(t *testing.T) {
		assert.True(t, order.Completed.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.True(t, order.Failed.IsTerminal())
	})

	t.Run("should report non-terminal statuses", func(t *testing.T) {
		nonTerminal := []order.Status{
			order.Placed,
			order.Unclaimed,
			order.Claimed,
			order.InProgress,
			order.Washed,
			order.OutForDelivery,
		}

		for _, status := range nonTerminal {
			assert.False(t, status.IsTerminal(), "%s should not be terminal", status.String())
		}
	})
}

func TestStatus_ConfirmPayment(t *testing.T) {
	t.Run("should transition Placed to Unclaimed", func(t *testing.T) {
		next, err := order.Placed.ConfirmPayment()

		require.NoError(t, err)
		assert.Equal(t, order.Unclaimed, next)
	})

	t.Run("should reject confirmation from any other status", func(t *testing.T) {
		invalidSources := []order.Status{
			order.Unclaimed,
			order.Claimed,
			order.InProgress,
			order.Completed,
			order.Cancelled,
			order.Failed,
		}

		for _, status := range invalidSources {
			t.Run(fmt.Sprintf("should reject from %s", status.String()), func(t *testing.T) {
				_, err := status.ConfirmPayment()

				require.ErrorIs(t, err, order.ErrInvalidTransition)
			})
		}
	})
}

func TestStatus_Claim(t *testing.T) {
	t.Run("should transition Unclaimed to Claimed", func(t *testing.T) {
		next, err := order.Unclaimed.Claim()

		require.NoError(t, err)
		assert.Equal(t, order.Claimed, next)
	})

	t.Run("should reject claim before payment confirmation", func(t *testing.T) {
		_, err := order.Placed.Claim()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject claim of an already claimed order", func(t *testing.T) {
		_, err := order.Claimed.Claim()

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestStatus_Advance(t *testing.T) {
	t.Run("should advance each fulfillment step exactly one forward", func(t *testing.T) {
		steps := []struct {
			from order.Status
			to   order.Status
		}{
			{order.Claimed, order.InProgress},
			{order.InProgress, order.Washed},
			{order.Washed, order.OutForDelivery},
			{order.OutForDelivery, order.Completed},
		}

		for _, step := range steps {
			t.Run(fmt.Sprintf("should advance %s to %s", step.from.String(), step.to.String()), func(t *testing.T) {
				next, err := step.from.Advance(step.to)

				require.NoError(t, err)
				assert.Equal(t, step.to, next)
			})
		}
	})

	t.Run("should reject skipped steps", func(t *testing.T) {
		_, err := order.Claimed.Advance(order.Washed)
		require.ErrorIs(t, err, order.ErrInvalidTransition)

		_, err = order.Claimed.Advance(order.Completed)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject replayed steps", func(t *testing.T) {
		_, err := order.Washed.Advance(order.Washed)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject backwards steps", func(t *testing.T) {
		_, err := order.OutForDelivery.Advance(order.Washed)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("should reject advancing from statuses outside fulfillment", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Unclaimed, order.Completed, order.Cancelled} {
			_, err := status.Advance(order.InProgress)

			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should cancel from Placed, Unclaimed and Claimed", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Unclaimed, order.Claimed} {
			next, err := status.Cancel()

			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, next)
		}
	})

	t.Run("should reject cancellation once fulfillment started", func(t *testing.T) {
		for _, status := range []order.Status{order.InProgress, order.Washed, order.OutForDelivery, order.Completed} {
			_, err := status.Cancel()

			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_Fail(t *testing.T) {
	t.Run("should fail from pre-claim statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Unclaimed} {
			next, err := status.Fail()

			require.NoError(t, err)
			assert.Equal(t, order.Failed, next)
		}
	})

	t.Run("should reject failure after a claim", func(t *testing.T) {
		for _, status := range []order.Status{order.Claimed, order.InProgress, order.Completed} {
			_, err := status.Fail()

			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_RefundPercentage(t *testing.T) {
	t.Run("should refund in full before a claim", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Unclaimed} {
			percent, err := status.RefundPercentage()

			require.NoError(t, err)
			assert.Equal(t, order.FullRefundPercent, percent)
		}
	})

	t.Run("should refund half once an operator owns the order", func(t *testing.T) {
		percent, err := order.Claimed.RefundPercentage()

		require.NoError(t, err)
		assert.Equal(t, order.PostClaimRefundPercent, percent)
	})

	t.Run("should reject statuses that do not permit cancellation", func(t *testing.T) {
		for _, status := range []order.Status{order.InProgress, order.Completed, order.Cancelled} {
			_, err := status.RefundPercentage()

			require.ErrorIs(t, err, order.ErrInvalidTransition)
		}
	})
}

func TestStatus_ValidateCanHaveOperator(t *testing.T) {
	t.Run("should require an operator for post-claim statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Claimed, order.InProgress, order.Washed, order.OutForDelivery, order.Completed} {
			require.NoError(t, status.ValidateCanHaveOperator(true))
			require.Error(t, status.ValidateCanHaveOperator(false))
		}
	})

	t.Run("should forbid an operator for pre-claim statuses", func(t *testing.T) {
		for _, status := range []order.Status{order.Placed, order.Unclaimed, order.Failed} {
			require.NoError(t, status.ValidateCanHaveOperator(false))
			require.Error(t, status.ValidateCanHaveOperator(true))
		}
	})

	t.Run("should allow Cancelled with or without an operator", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHaveOperator(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveOperator(false))
	})
}
