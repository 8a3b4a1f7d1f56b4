// Package notify provides the outbound notification adapter.
//
// SlogNotifier writes every message to structured logs instead of an SMS or
// push gateway. It stands in for the real channel in development and keeps
// an audit trail of what would have been sent. OTP codes are the one
// exception: they are delivered verbatim to their recipient and never
// logged, so the log variant records only that a code went out.
package notify

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/kernel"
)

// SlogNotifier implements ports.Notifier on top of structured logging.
type SlogNotifier struct {
	logger *slog.Logger
}

// NewSlogNotifier creates a notifier that logs instead of sending.
func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{
		logger: logger.With("component", "notifier"),
	}
}

// OrderStatusChanged logs the status message for the customer.
func (n *SlogNotifier) OrderStatusChanged(ctx context.Context, customerID kernel.UUID, orderNumber, status string) {
	n.logger.InfoContext(ctx, "order status notification",
		"customer_id", customerID.String(),
		"order_number", orderNumber,
		"status", status,
	)
}

// DeliveryOTPIssued logs that a delivery code went out. The code itself is
// deliberately absent.
func (n *SlogNotifier) DeliveryOTPIssued(ctx context.Context, customerID kernel.UUID, orderNumber, code string) {
	n.logger.InfoContext(ctx, "delivery otp issued",
		"customer_id", customerID.String(),
		"order_number", orderNumber,
		"digits", len(code),
	)
}

// AssignmentOTPIssued logs that a handover code went out to the agent.
func (n *SlogNotifier) AssignmentOTPIssued(ctx context.Context, agentID kernel.UUID, orderNumber, code string) {
	n.logger.InfoContext(ctx, "assignment otp issued",
		"agent_id", agentID.String(),
		"order_number", orderNumber,
		"digits", len(code),
	)
}

// ReturnStatusChanged logs the return progress message for the customer.
func (n *SlogNotifier) ReturnStatusChanged(ctx context.Context, customerID kernel.UUID, returnID kernel.UUID, status string) {
	n.logger.InfoContext(ctx, "return status notification",
		"customer_id", customerID.String(),
		"return_id", returnID.String(),
		"status", status,
	)
}
