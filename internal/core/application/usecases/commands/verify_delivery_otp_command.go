package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrVerifyDeliveryOTPCommandIsNotConstructed = errors.New(
	"VerifyDeliveryOTPCommand must be created via NewVerifyDeliveryOTPCommand constructor",
)

// VerifyDeliveryOTPCommand represents a delivery confirmation attempt.
// A matching code is the only path to the delivered status; it also credits
// the delivery fee to the assigned agent.
type VerifyDeliveryOTPCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	code    string

	guard guard.ConstructorGuard
}

// NewVerifyDeliveryOTPCommand creates a command to verify the delivery code.
func NewVerifyDeliveryOTPCommand(orderID kernel.UUID, code string) (VerifyDeliveryOTPCommand, error) {
	cmd := VerifyDeliveryOTPCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
	); err != nil {
		return VerifyDeliveryOTPCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyDeliveryOTPCommand) Validate() error {
	return c.guard.Validate(ErrVerifyDeliveryOTPCommandIsNotConstructed)
}

// OrderID returns the order being confirmed.
func (c VerifyDeliveryOTPCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the attempted code.
func (c VerifyDeliveryOTPCommand) Code() string {
	return c.code
}

func (c *VerifyDeliveryOTPCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *VerifyDeliveryOTPCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}

	c.code = code
	return nil
}
