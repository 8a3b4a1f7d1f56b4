package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSettleReturnCommandIsNotConstructed = errors.New(
	"SettleReturnCommand must be created via NewSettleReturnCommand constructor",
)

// SettleAction is one step of a return's settlement.
type SettleAction string

const (
	// SettleInitiateRefund hands the refund to the payout channel.
	SettleInitiateRefund SettleAction = "initiate_refund"

	// SettleCompleteRefund records the customer received the money and
	// restocks the returned quantity.
	SettleCompleteRefund SettleAction = "complete_refund"

	// SettleInitiateExchange dispatches the replacement item.
	SettleInitiateExchange SettleAction = "initiate_exchange"

	// SettleCompleteExchange records delivery of the replacement and
	// restocks the returned quantity.
	SettleCompleteExchange SettleAction = "complete_exchange"
)

// Validate checks if the SettleAction value is valid.
func (a SettleAction) Validate() error {
	switch a {
	case SettleInitiateRefund, SettleCompleteRefund, SettleInitiateExchange, SettleCompleteExchange:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("settle action",
			fmt.Errorf("%q is not a valid settle action", string(a)))
	}
}

// SettleReturnCommand represents one settlement step of a quality-cleared
// return: initiating or completing the refund or the exchange.
type SettleReturnCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	returnID kernel.UUID
	action   SettleAction
	by       string

	guard guard.ConstructorGuard
}

// NewSettleReturnCommand creates a command to advance a return's settlement.
func NewSettleReturnCommand(orderID, returnID kernel.UUID, action SettleAction, by string) (SettleReturnCommand, error) {
	cmd := SettleReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		returnID.Validate(),
		action.Validate(),
	); err != nil {
		return SettleReturnCommand{}, err
	}

	if by == "" {
		return SettleReturnCommand{}, errs.NewValueIsRequiredError("by")
	}

	cmd.orderID = orderID
	cmd.returnID = returnID
	cmd.action = action
	cmd.by = by

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleReturnCommand) Validate() error {
	return c.guard.Validate(ErrSettleReturnCommandIsNotConstructed)
}

// OrderID returns the order the return was filed against.
func (c SettleReturnCommand) OrderID() kernel.UUID { return c.orderID }

// ReturnID returns the request being settled.
func (c SettleReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// Action returns the settlement step to apply.
func (c SettleReturnCommand) Action() SettleAction { return c.action }

// By returns who records the step.
func (c SettleReturnCommand) By() string { return c.by }
