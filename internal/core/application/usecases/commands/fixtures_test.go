package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/agent"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/locker"

	"github.com/stretchr/testify/require"
)

func newTestLocks() *locker.KeyedMutex {
	return locker.NewKeyedMutex()
}

func fixtureItem(t *testing.T) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Trail Shoes", kernel.MustMoneyFromFloat(500), 2)
	require.NoError(t, err)
	return item
}

func fixturePricing() order.Pricing {
	return order.Pricing{
		ItemsTotal:     kernel.MustMoneyFromFloat(1000),
		DeliveryCharge: kernel.MustMoneyFromFloat(40),
		Tax:            kernel.ZeroMoney(),
		Discount:       kernel.ZeroMoney(),
		CouponDiscount: kernel.ZeroMoney(),
		TotalAmount:    kernel.MustMoneyFromFloat(1040),
	}
}

func fixtureOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-20260314-0001", kernel.NewUUID(),
		[]*order.Item{fixtureItem(t)}, fixturePricing(),
		order.PaymentMethodCOD, order.PaymentPending, time.Now().UTC(),
	)
	require.NoError(t, err)
	return o
}

// fixtureOutForDelivery walks a fresh order to out_for_delivery carried by
// the returned agent, with a delivery OTP already issued.
func fixtureOutForDelivery(t *testing.T) (*order.Order, *agent.Agent, string) {
	t.Helper()
	now := time.Now().UTC()

	o := fixtureOrder(t)
	a := fixtureAgent(t)

	require.NoError(t, o.AssignAgent(a.ID(), now))
	require.NoError(t, a.AcceptOrder(o.ID()))
	require.NoError(t, o.TransitionTo(order.Packed, "", now))
	require.NoError(t, o.TransitionTo(order.Shipped, "", now))
	require.NoError(t, o.TransitionTo(order.OutForDelivery, "", now))

	otp, err := o.IssueDeliveryOTP(now)
	require.NoError(t, err)

	return o, a, otp.Code()
}

// fixtureDelivered restores a delivered order for the given customer,
// delivered one hour ago so it is well inside the return window.
func fixtureDelivered(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	deliveredAt := now.Add(-time.Hour)
	agentID := kernel.NewUUID()

	o, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:            kernel.NewUUID(),
		OrderNumber:   "ORD-20260314-0002",
		CustomerID:    customerID,
		Items:         []*order.Item{fixtureItem(t)},
		Pricing:       fixturePricing(),
		PaymentMethod: order.PaymentMethodCOD,
		PaymentStatus: order.PaymentPaid,
		Status:        order.Delivered,
		History:       []order.HistoryEntry{order.NewHistoryEntry(order.Pending, "Order placed", now.Add(-48 * time.Hour))},
		AgentID:       &agentID,
		DeliveredAt:   &deliveredAt,
		CreatedAt:     now.Add(-48 * time.Hour),
	})
	require.NoError(t, err)
	return o
}

func fixtureAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), "Ravi Kumar", "+919800000001", 0)
	require.NoError(t, err)
	a.Approve()
	return a
}

func fixtureProduct(t *testing.T) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), "Trail Shoes", "SKU-TRAIL-42", kernel.MustMoneyFromFloat(500), 10)
	require.NoError(t, err)
	return p
}

// fixtureReturn files a refund-type return against the delivered order's
// first item.
func fixtureReturn(t *testing.T, o *order.Order) *rma.ReturnRequest {
	t.Helper()
	item := o.Items()[0]

	r, err := rma.NewReturnRequest(
		kernel.NewUUID(), o.ID(), item.ID(), o.CustomerID(),
		rma.ReasonDefective, "stopped working", rma.TypeRefund, 1,
		item.UnitPrice(), rma.RefundToOriginalPayment, nil, time.Now().UTC(),
	)
	require.NoError(t, err)
	return r
}
