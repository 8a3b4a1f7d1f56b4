package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	t.Run("parses all persisted forms", func(t *testing.T) {
		cases := map[string]order.Status{
			"pending":          order.Pending,
			"confirmed":        order.Confirmed,
			"processing":       order.Processing,
			"packed":           order.Packed,
			"shipped":          order.Shipped,
			"out_for_delivery": order.OutForDelivery,
			"delivered":        order.Delivered,
			"cancelled":        order.Cancelled,
			"returned":         order.Returned,
			"failed":           order.Failed,
		}

		for str, want := range cases {
			got, err := order.StatusFromString(str)
			require.NoError(t, err, str)
			assert.Equal(t, want, got)
			assert.Equal(t, str, got.String())
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		_, err := order.StatusFromString("teleported")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = order.StatusFromString("unknown")
		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	assert.Error(t, order.Unknown.Validate())
	assert.Error(t, order.Status(99).Validate())
	assert.NoError(t, order.Pending.Validate())
	assert.NoError(t, order.Failed.Validate())
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("moves forward along the chain", func(t *testing.T) {
		chain := []order.Status{
			order.Pending, order.Confirmed, order.Processing,
			order.Packed, order.Shipped, order.OutForDelivery,
		}

		for i := 0; i < len(chain)-1; i++ {
			next, err := chain[i].TransitionTo(chain[i+1])
			require.NoError(t, err)
			assert.Equal(t, chain[i+1], next)
		}
	})

	t.Run("allows forward jumps", func(t *testing.T) {
		next, err := order.Confirmed.TransitionTo(order.Packed)
		require.NoError(t, err)
		assert.Equal(t, order.Packed, next)
	})

	t.Run("never regresses", func(t *testing.T) {
		_, err := order.Shipped.TransitionTo(order.Processing)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		_, err = order.Packed.TransitionTo(order.Packed)
		require.Error(t, err)
	})

	t.Run("delivered is unreachable without otp verification", func(t *testing.T) {
		_, err := order.OutForDelivery.TransitionTo(order.Delivered)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("side exits are not transition targets", func(t *testing.T) {
		_, err := order.Confirmed.TransitionTo(order.Cancelled)
		require.Error(t, err)

		_, err = order.Confirmed.TransitionTo(order.Failed)
		require.Error(t, err)
	})

	t.Run("terminal statuses reject transitions", func(t *testing.T) {
		_, err := order.Cancelled.TransitionTo(order.Shipped)
		require.Error(t, err)
	})
}

func TestStatus_CanCancel(t *testing.T) {
	cancellable := []order.Status{order.Pending, order.Confirmed, order.Processing, order.Packed}
	for _, s := range cancellable {
		assert.True(t, s.CanCancel(), s.String())
	}

	notCancellable := []order.Status{order.Shipped, order.Delivered, order.Cancelled, order.Returned}
	for _, s := range notCancellable {
		assert.False(t, s.CanCancel(), s.String())
	}
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("cancels a packed order", func(t *testing.T) {
		next, err := order.Packed.Cancel()
		require.NoError(t, err)
		assert.Equal(t, order.Cancelled, next)
	})

	t.Run("rejects cancelling a shipped order", func(t *testing.T) {
		_, err := order.Shipped.Cancel()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		var precondition *errs.PreconditionFailedError
		require.ErrorAs(t, err, &precondition)
		assert.Equal(t, "shipped", precondition.CurrentState)
	})
}

func TestStatus_Deliver(t *testing.T) {
	t.Run("delivers from out_for_delivery", func(t *testing.T) {
		next, err := order.OutForDelivery.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)
	})

	t.Run("rejects delivery from any other status", func(t *testing.T) {
		for _, s := range []order.Status{order.Pending, order.Shipped, order.Delivered, order.Cancelled} {
			_, err := s.Deliver()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_Return(t *testing.T) {
	t.Run("returns a delivered order", func(t *testing.T) {
		next, err := order.Delivered.Return()
		require.NoError(t, err)
		assert.Equal(t, order.Returned, next)
	})

	t.Run("rejects returning an undelivered order", func(t *testing.T) {
		_, err := order.OutForDelivery.Return()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestStatus_Fail(t *testing.T) {
	t.Run("fails an in-flight order", func(t *testing.T) {
		next, err := order.OutForDelivery.Fail()
		require.NoError(t, err)
		assert.Equal(t, order.Failed, next)
	})

	t.Run("rejects failing delivered and terminal orders", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Cancelled, order.Returned, order.Failed} {
			_, err := s.Fail()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Returned.IsTerminal())
	assert.True(t, order.Failed.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())
	assert.False(t, order.Pending.IsTerminal())
}

func TestStatus_IsBefore(t *testing.T) {
	assert.True(t, order.Pending.IsBefore(order.Processing))
	assert.False(t, order.Processing.IsBefore(order.Processing))
	assert.False(t, order.Shipped.IsBefore(order.Processing))
	assert.False(t, order.Cancelled.IsBefore(order.Processing))
}
