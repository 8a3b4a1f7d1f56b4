package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrIssueDeliveryOTPCommandIsNotConstructed = errors.New(
	"IssueDeliveryOTPCommand must be created via NewIssueDeliveryOTPCommand constructor",
)

// IssueDeliveryOTPCommand represents a request to issue the 4-digit
// delivery confirmation code for an out-for-delivery order. Reissue within
// the 2-minute cooldown is rate limited.
type IssueDeliveryOTPCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueDeliveryOTPCommand creates a command to issue a delivery OTP.
func NewIssueDeliveryOTPCommand(orderID kernel.UUID) (IssueDeliveryOTPCommand, error) {
	cmd := IssueDeliveryOTPCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return IssueDeliveryOTPCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueDeliveryOTPCommand) Validate() error {
	return c.guard.Validate(ErrIssueDeliveryOTPCommandIsNotConstructed)
}

// OrderID returns the order to issue the code for.
func (c IssueDeliveryOTPCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *IssueDeliveryOTPCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
