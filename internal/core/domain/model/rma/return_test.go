package rma_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func mustNewReturn(t *testing.T) *rma.ReturnRequest {
	t.Helper()
	r, err := rma.NewReturnRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		rma.ReasonDefective, "stopped working after two days",
		rma.TypeRefund, 2, kernel.MustMoneyFromFloat(500),
		rma.RefundToOriginalPayment, nil, testNow,
	)
	require.NoError(t, err)
	return r
}

func returnAtQualityCheck(t *testing.T, r *rma.ReturnRequest) {
	t.Helper()
	require.NoError(t, r.Approve("admin", testNow))
	require.NoError(t, r.SchedulePickup(testNow.Add(48*time.Hour), "10:00-13:00", "admin", testNow))
	require.NoError(t, r.CompletePickup("agent", testNow))
	require.NoError(t, r.MarkInTransit("agent", testNow))
	require.NoError(t, r.ReceiveAtWarehouse("warehouse", testNow))
}

func TestNewReturnRequest(t *testing.T) {
	t.Run("computes refund minus restocking fee", func(t *testing.T) {
		r := mustNewReturn(t)

		// 2 x 500 = 1000, minus 10% restocking fee
		assert.True(t, r.RefundAmount().IsEqual(kernel.MustMoneyFromFloat(900)))
		assert.Equal(t, rma.StatusPending, r.Status())
		assert.True(t, r.EstimatedRefundDate().IsZero())
		require.Len(t, r.AdminNotes(), 1)
		assert.Equal(t, "Return request filed", r.AdminNotes()[0].Note())
	})

	t.Run("exchange requires replacement details", func(t *testing.T) {
		_, err := rma.NewReturnRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			rma.ReasonWrongSize, "need a larger size",
			rma.TypeExchange, 1, kernel.MustMoneyFromFloat(500),
			rma.RefundToOriginalPayment, nil, testNow,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := rma.NewReturnRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			rma.ReasonDefective, "",
			rma.TypeRefund, 0, kernel.MustMoneyFromFloat(500),
			rma.RefundToOriginalPayment, nil, testNow,
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var r rma.ReturnRequest
		assert.ErrorIs(t, r.Validate(), rma.ErrReturnIsNotConstructed)
	})
}

func TestReturnRequest_Review(t *testing.T) {
	t.Run("approve moves to approved", func(t *testing.T) {
		r := mustNewReturn(t)

		require.NoError(t, r.Approve("admin", testNow))

		assert.Equal(t, rma.StatusApproved, r.Status())
	})

	t.Run("approve stamps the refund estimate from the approval time", func(t *testing.T) {
		r := mustNewReturn(t)
		approvedAt := testNow.Add(3 * 24 * time.Hour)

		require.NoError(t, r.Approve("admin", approvedAt))

		assert.Equal(t, approvedAt.Add(rma.RefundEstimateLead), r.EstimatedRefundDate())
	})

	t.Run("reject records the reason", func(t *testing.T) {
		r := mustNewReturn(t)

		require.NoError(t, r.Reject("outside return policy", "admin", testNow))

		assert.Equal(t, rma.StatusRejected, r.Status())
		assert.Equal(t, "outside return policy", r.RejectionReason())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		r := mustNewReturn(t)

		err := r.Reject("", "admin", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, rma.StatusPending, r.Status())
	})

	t.Run("cannot approve twice", func(t *testing.T) {
		r := mustNewReturn(t)
		require.NoError(t, r.Approve("admin", testNow))

		err := r.Approve("admin", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestReturnRequest_SchedulePickup(t *testing.T) {
	t.Run("books date and slot", func(t *testing.T) {
		r := mustNewReturn(t)
		require.NoError(t, r.Approve("admin", testNow))
		date := testNow.Add(48 * time.Hour)

		require.NoError(t, r.SchedulePickup(date, "10:00-13:00", "admin", testNow))

		assert.Equal(t, rma.StatusPickupScheduled, r.Status())
		require.NotNil(t, r.Pickup())
		assert.Equal(t, date, r.Pickup().Date())
		assert.Equal(t, "10:00-13:00", r.Pickup().TimeSlot())
		assert.Nil(t, r.Pickup().AgentID())
	})

	t.Run("rejects dates outside the window", func(t *testing.T) {
		r := mustNewReturn(t)
		require.NoError(t, r.Approve("admin", testNow))

		err := r.SchedulePickup(testNow.Add(-time.Hour), "10:00-13:00", "admin", testNow)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

		err = r.SchedulePickup(testNow.Add(rma.PickupWindow+time.Hour), "10:00-13:00", "admin", testNow)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires approval first", func(t *testing.T) {
		r := mustNewReturn(t)

		err := r.SchedulePickup(testNow.Add(48*time.Hour), "10:00-13:00", "admin", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestReturnRequest_AssignPickupAgent(t *testing.T) {
	t.Run("puts the agent on the booking", func(t *testing.T) {
		r := mustNewReturn(t)
		require.NoError(t, r.Approve("admin", testNow))
		require.NoError(t, r.SchedulePickup(testNow.Add(48*time.Hour), "10:00-13:00", "admin", testNow))
		agentID := kernel.NewUUID()

		require.NoError(t, r.AssignPickupAgent(agentID, "admin", testNow))

		require.NotNil(t, r.Pickup().AgentID())
		assert.True(t, r.Pickup().AgentID().IsEqual(agentID))
	})

	t.Run("needs a booked pickup", func(t *testing.T) {
		r := mustNewReturn(t)

		err := r.AssignPickupAgent(kernel.NewUUID(), "admin", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestReturnRequest_QualityCheck(t *testing.T) {
	t.Run("passed check clears for settlement", func(t *testing.T) {
		r := mustNewReturn(t)
		returnAtQualityCheck(t, r)

		require.NoError(t, r.RecordQualityCheck(true, "item verified defective", "warehouse", testNow))

		assert.Equal(t, rma.StatusQualityCheckPassed, r.Status())
		assert.Equal(t, "item verified defective", r.QualityCheckNotes())
	})

	t.Run("failed check is terminal", func(t *testing.T) {
		r := mustNewReturn(t)
		returnAtQualityCheck(t, r)

		require.NoError(t, r.RecordQualityCheck(false, "signs of misuse", "warehouse", testNow))

		assert.Equal(t, rma.StatusQualityCheckFailed, r.Status())
		assert.True(t, r.Status().IsTerminal())
		assert.ErrorIs(t, r.InitiateRefund("admin", testNow), errs.ErrPreconditionFailed)
	})
}

func TestReturnRequest_RefundSettlement(t *testing.T) {
	t.Run("initiate then complete stamps refundedAt", func(t *testing.T) {
		r := mustNewReturn(t)
		returnAtQualityCheck(t, r)
		require.NoError(t, r.RecordQualityCheck(true, "", "warehouse", testNow))

		require.NoError(t, r.InitiateRefund("admin", testNow))
		assert.Equal(t, rma.StatusRefundInitiated, r.Status())
		assert.Nil(t, r.RefundedAt())

		require.NoError(t, r.CompleteRefund("payments", testNow))
		assert.Equal(t, rma.StatusRefundCompleted, r.Status())
		require.NotNil(t, r.RefundedAt())
		assert.Equal(t, testNow, *r.RefundedAt())
	})

	t.Run("exchange request cannot take the refund path", func(t *testing.T) {
		exchange, err := rma.NewExchange(kernel.NewUUID(), "L", "black")
		require.NoError(t, err)
		r, err := rma.NewReturnRequest(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			rma.ReasonWrongSize, "",
			rma.TypeExchange, 1, kernel.MustMoneyFromFloat(500),
			rma.RefundToOriginalPayment, &exchange, testNow,
		)
		require.NoError(t, err)
		returnAtQualityCheck(t, r)
		require.NoError(t, r.RecordQualityCheck(true, "", "warehouse", testNow))

		err = r.InitiateRefund("admin", testNow)
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)

		require.NoError(t, r.InitiateExchange("admin", testNow))
		require.NoError(t, r.CompleteExchange("agent", testNow))
		assert.Equal(t, rma.StatusExchangeDelivered, r.Status())
	})

	t.Run("refund request cannot take the exchange path", func(t *testing.T) {
		r := mustNewReturn(t)
		returnAtQualityCheck(t, r)
		require.NoError(t, r.RecordQualityCheck(true, "", "warehouse", testNow))

		err := r.InitiateExchange("admin", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestReturnRequest_Cancel(t *testing.T) {
	t.Run("allowed before pickup completes", func(t *testing.T) {
		r := mustNewReturn(t)
		require.NoError(t, r.Approve("admin", testNow))

		require.NoError(t, r.Cancel("customer", testNow))

		assert.Equal(t, rma.StatusCancelled, r.Status())
	})

	t.Run("rejected once items are collected", func(t *testing.T) {
		r := mustNewReturn(t)
		require.NoError(t, r.Approve("admin", testNow))
		require.NoError(t, r.SchedulePickup(testNow.Add(48*time.Hour), "10:00-13:00", "admin", testNow))
		require.NoError(t, r.CompletePickup("agent", testNow))

		err := r.Cancel("customer", testNow)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})
}

func TestReturnRequest_AdminNotes(t *testing.T) {
	r := mustNewReturn(t)
	require.NoError(t, r.Approve("admin", testNow))
	require.NoError(t, r.SchedulePickup(testNow.Add(48*time.Hour), "10:00-13:00", "admin", testNow.Add(time.Minute)))

	notes := r.AdminNotes()

	require.Len(t, notes, 3)
	assert.Equal(t, "Return request filed", notes[0].Note())
	assert.Equal(t, "Return approved", notes[1].Note())
	assert.Equal(t, "admin", notes[1].By())

	// mutating the returned slice must not touch the aggregate
	notes[0] = rma.NewAdminNote("tampered", "x", testNow)
	assert.Equal(t, "Return request filed", r.AdminNotes()[0].Note())
}

func TestRestoreReturnRequest(t *testing.T) {
	t.Run("restores persisted state without reseeding notes", func(t *testing.T) {
		refundedAt := testNow.Add(72 * time.Hour)
		agentID := kernel.NewUUID()
		pickup := rma.RestorePickup(testNow.Add(24*time.Hour), "14:00-17:00", &agentID)

		r, err := rma.RestoreReturnRequest(rma.RestoreReturnRequestParams{
			ID:                  kernel.NewUUID(),
			OrderID:             kernel.NewUUID(),
			OrderItemID:         kernel.NewUUID(),
			CustomerID:          kernel.NewUUID(),
			Reason:              rma.ReasonDefective,
			Description:         "stopped working",
			ReturnType:          rma.TypeRefund,
			Quantity:            1,
			Status:              rma.StatusRefundCompleted,
			RefundAmount:        kernel.MustMoneyFromFloat(450),
			RefundMethod:        rma.RefundToWallet,
			EstimatedRefundDate: testNow.Add(rma.RefundEstimateLead),
			RefundedAt:          &refundedAt,
			Pickup:              &pickup,
			AdminNotes:          []rma.AdminNote{rma.NewAdminNote("Return request filed", "customer", testNow)},
			CreatedAt:           testNow,
		})

		require.NoError(t, err)
		assert.NoError(t, r.Validate())
		assert.Equal(t, rma.StatusRefundCompleted, r.Status())
		require.Len(t, r.AdminNotes(), 1)
		require.NotNil(t, r.Pickup().AgentID())
		assert.True(t, r.Pickup().AgentID().IsEqual(agentID))
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := rma.RestoreReturnRequest(rma.RestoreReturnRequestParams{
			ID:           kernel.NewUUID(),
			OrderID:      kernel.NewUUID(),
			OrderItemID:  kernel.NewUUID(),
			CustomerID:   kernel.NewUUID(),
			Reason:       rma.ReasonDefective,
			ReturnType:   rma.TypeRefund,
			Quantity:     1,
			RefundMethod: rma.RefundToWallet,
			Status:       rma.StatusUnknown,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
