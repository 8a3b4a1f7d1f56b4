package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	line := commands.OrderLine{ProductID: kernel.NewUUID(), Quantity: 1}
	zero := kernel.ZeroMoney()

	t.Run("requires at least one line", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			zero, zero, zero, zero, order.PaymentMethodCOD, "")
		require.ErrorIs(t, err, commands.ErrOrderLinesAreRequired)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(),
			[]commands.OrderLine{{ProductID: kernel.NewUUID(), Quantity: 0}},
			zero, zero, zero, zero, order.PaymentMethodCOD, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("online payment needs a reference", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(
			kernel.NewUUID(), kernel.NewUUID(), []commands.OrderLine{line},
			zero, zero, zero, zero, order.PaymentMethodOnline, "")
		require.ErrorIs(t, err, commands.ErrPaymentRefIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}

func TestNewCancelOrderCommand_Validation(t *testing.T) {
	_, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "", "customer")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCancelOrderCommand(kernel.NewUUID(), "changed my mind", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	cmd, err := commands.NewCancelOrderCommand(kernel.NewUUID(), "changed my mind", "customer")
	require.NoError(t, err)
	assert.Equal(t, "changed my mind", cmd.Reason())
}

func TestNewTransitionStatusCommand_Validation(t *testing.T) {
	_, err := commands.NewTransitionStatusCommand(kernel.NewUUID(), order.Unknown, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewTransitionStatusCommand(kernel.NewUUID(), order.Packed, "packed by warehouse")
	require.NoError(t, err)
	assert.Equal(t, order.Packed, cmd.Target())
}

func TestNewReviewReturnCommand_Validation(t *testing.T) {
	t.Run("rejection requires a reason", func(t *testing.T) {
		_, err := commands.NewReviewReturnCommand(kernel.NewUUID(), kernel.NewUUID(), false, "", "admin")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("approval does not", func(t *testing.T) {
		cmd, err := commands.NewReviewReturnCommand(kernel.NewUUID(), kernel.NewUUID(), true, "", "admin")
		require.NoError(t, err)
		assert.True(t, cmd.Approve())
	})
}

func TestNewAdvancePickupCommand_Validation(t *testing.T) {
	agentID := kernel.NewUUID()

	t.Run("assign_agent requires an agent", func(t *testing.T) {
		_, err := commands.NewAdvancePickupCommand(kernel.NewUUID(), commands.PickupAssignAgent, nil, "admin")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("other actions forbid an agent", func(t *testing.T) {
		_, err := commands.NewAdvancePickupCommand(kernel.NewUUID(), commands.PickupCompleted, &agentID, "agent")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown action is invalid", func(t *testing.T) {
		_, err := commands.NewAdvancePickupCommand(kernel.NewUUID(), commands.PickupAction("teleport"), nil, "admin")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewSettleReturnCommand_Validation(t *testing.T) {
	_, err := commands.NewSettleReturnCommand(kernel.NewUUID(), kernel.NewUUID(), commands.SettleAction("keep_it"), "admin")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewSettleReturnCommand(kernel.NewUUID(), kernel.NewUUID(), commands.SettleCompleteExchange, "admin")
	require.NoError(t, err)
	assert.Equal(t, commands.SettleCompleteExchange, cmd.Action())
}

func TestNewInitiateReturnCommand_Validation(t *testing.T) {
	t.Run("exchange requires replacement details", func(t *testing.T) {
		_, err := commands.NewInitiateReturnCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			rma.ReasonWrongSize, "", rma.TypeExchange, 1,
			rma.RefundToOriginalPayment, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("quantity must be positive", func(t *testing.T) {
		_, err := commands.NewInitiateReturnCommand(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			rma.ReasonDefective, "", rma.TypeRefund, 0,
			rma.RefundToOriginalPayment, nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewSchedulePickupCommand_Validation(t *testing.T) {
	_, err := commands.NewSchedulePickupCommand(kernel.NewUUID(), time.Time{}, "10:00-13:00", "admin")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewSchedulePickupCommand(kernel.NewUUID(), time.Now(), "", "admin")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
