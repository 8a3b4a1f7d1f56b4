package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelReturnCommandIsNotConstructed = errors.New(
	"CancelReturnCommand must be created via NewCancelReturnCommand constructor",
)

// CancelReturnCommand represents the customer withdrawing a return request
// before the items are collected. The denormalized marker on the order item
// is cleared.
type CancelReturnCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	returnID kernel.UUID
	by       string

	guard guard.ConstructorGuard
}

// NewCancelReturnCommand creates a command to withdraw a return request.
func NewCancelReturnCommand(orderID, returnID kernel.UUID, by string) (CancelReturnCommand, error) {
	cmd := CancelReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		returnID.Validate(),
	); err != nil {
		return CancelReturnCommand{}, err
	}

	if by == "" {
		return CancelReturnCommand{}, errs.NewValueIsRequiredError("by")
	}

	cmd.orderID = orderID
	cmd.returnID = returnID
	cmd.by = by

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelReturnCommand) Validate() error {
	return c.guard.Validate(ErrCancelReturnCommandIsNotConstructed)
}

// OrderID returns the order the return was filed against.
func (c CancelReturnCommand) OrderID() kernel.UUID { return c.orderID }

// ReturnID returns the request to withdraw.
func (c CancelReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// By returns who withdraws the request.
func (c CancelReturnCommand) By() string { return c.by }
