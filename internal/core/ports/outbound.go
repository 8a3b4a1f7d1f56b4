package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
)

// PaymentGateway is the outbound contract to the payment provider.
// Failures surface as errs.ExternalFailureError; command handlers decide
// whether to fail the operation or record the attempt.
type PaymentGateway interface {
	// VerifyPayment checks that an online payment for the given reference
	// settled. Called before an online order is accepted.
	VerifyPayment(ctx context.Context, paymentRef string) error

	// Refund reverses a settled payment up to the given amount.
	Refund(ctx context.Context, paymentRef string, amount kernel.Money) error
}

// RefundExecutor pays out a completed return through the customer's chosen
// refund method. Implementations route original-payment refunds to the
// gateway and the rest to their respective channels.
type RefundExecutor interface {
	// Execute pays amount to the customer via method.
	// Returns errs.ExternalFailureError when the channel rejects the payout.
	Execute(ctx context.Context, customerID kernel.UUID, method rma.RefundMethod, amount kernel.Money) error
}

// Notifier pushes customer- and agent-facing messages: status changes, OTP
// codes, return decisions. Notification failures never fail the command
// that triggered them.
type Notifier interface {
	// OrderStatusChanged tells the customer the order moved to a new status.
	OrderStatusChanged(ctx context.Context, customerID kernel.UUID, orderNumber, status string)

	// DeliveryOTPIssued sends the delivery confirmation code to the customer.
	DeliveryOTPIssued(ctx context.Context, customerID kernel.UUID, orderNumber, code string)

	// AssignmentOTPIssued sends the handover code to the assigned agent.
	AssignmentOTPIssued(ctx context.Context, agentID kernel.UUID, orderNumber, code string)

	// ReturnStatusChanged tells the customer the return request moved on.
	ReturnStatusChanged(ctx context.Context, customerID kernel.UUID, returnID kernel.UUID, status string)
}
