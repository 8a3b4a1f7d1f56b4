package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to cancel an order, recording who
// cancelled it and why. Cancellation releases reserved stock and frees the
// assigned agent's slot, if any.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	reason      string
	cancelledBy string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order.
// Both the reason and the cancelling actor are required.
func NewCancelOrderCommand(orderID kernel.UUID, reason, cancelledBy string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReason(reason),
		cmd.setCancelledBy(cancelledBy),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Reason returns why the order is being cancelled.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

// CancelledBy returns who requested the cancellation.
func (c CancelOrderCommand) CancelledBy() string {
	return c.cancelledBy
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}

	c.reason = reason
	return nil
}

func (c *CancelOrderCommand) setCancelledBy(cancelledBy string) error {
	if cancelledBy == "" {
		return errs.NewValueIsRequiredError("cancelledBy")
	}

	c.cancelledBy = cancelledBy
	return nil
}
