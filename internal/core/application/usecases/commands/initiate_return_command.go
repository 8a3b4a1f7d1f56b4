package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rma"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrInitiateReturnCommandIsNotConstructed = errors.New(
	"InitiateReturnCommand must be created via NewInitiateReturnCommand constructor",
)

// ExchangeDetails carries the replacement item for an exchange-type return.
type ExchangeDetails struct {
	ProductID kernel.UUID
	Size      string
	Color     string
}

// InitiateReturnCommand represents a customer filing a return for one order
// item. The order must be delivered and within the return window; the
// handler checks both against the order aggregate.
type InitiateReturnCommand struct { //nolint:recvcheck //using for validation
	returnID     kernel.UUID
	orderID      kernel.UUID
	orderItemID  kernel.UUID
	customerID   kernel.UUID
	reason       rma.Reason
	description  string
	returnType   rma.Type
	quantity     int
	refundMethod rma.RefundMethod
	exchange     *ExchangeDetails

	guard guard.ConstructorGuard
}

// NewInitiateReturnCommand creates a command to file a return.
// Exchange-type returns must carry replacement details.
func NewInitiateReturnCommand(
	returnID, orderID, orderItemID, customerID kernel.UUID,
	reason rma.Reason,
	description string,
	returnType rma.Type,
	quantity int,
	refundMethod rma.RefundMethod,
	exchange *ExchangeDetails,
) (InitiateReturnCommand, error) {
	cmd := InitiateReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUUID(&cmd.returnID, returnID),
		cmd.setUUID(&cmd.orderID, orderID),
		cmd.setUUID(&cmd.orderItemID, orderItemID),
		cmd.setUUID(&cmd.customerID, customerID),
		reason.Validate(),
		returnType.Validate(),
		refundMethod.Validate(),
	); err != nil {
		return InitiateReturnCommand{}, err
	}

	if quantity <= 0 {
		return InitiateReturnCommand{}, errs.NewValueIsInvalidError("quantity")
	}
	if returnType == rma.TypeExchange && exchange == nil {
		return InitiateReturnCommand{}, rma.ErrExchangeDetailsRequired
	}

	cmd.reason = reason
	cmd.description = description
	cmd.returnType = returnType
	cmd.quantity = quantity
	cmd.refundMethod = refundMethod
	cmd.exchange = exchange

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c InitiateReturnCommand) Validate() error {
	return c.guard.Validate(ErrInitiateReturnCommandIsNotConstructed)
}

// ReturnID returns the identifier the new request will carry.
func (c InitiateReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// OrderID returns the order the return is filed against.
func (c InitiateReturnCommand) OrderID() kernel.UUID { return c.orderID }

// OrderItemID returns the order line being returned.
func (c InitiateReturnCommand) OrderItemID() kernel.UUID { return c.orderItemID }

// CustomerID returns the requesting customer.
func (c InitiateReturnCommand) CustomerID() kernel.UUID { return c.customerID }

// Reason returns the customer's stated cause.
func (c InitiateReturnCommand) Reason() rma.Reason { return c.reason }

// Description returns the customer's free-form detail.
func (c InitiateReturnCommand) Description() string { return c.description }

// ReturnType returns how the request settles.
func (c InitiateReturnCommand) ReturnType() rma.Type { return c.returnType }

// Quantity returns how many units are being returned.
func (c InitiateReturnCommand) Quantity() int { return c.quantity }

// RefundMethod returns the channel a refund pays through.
func (c InitiateReturnCommand) RefundMethod() rma.RefundMethod { return c.refundMethod }

// Exchange returns the replacement details for exchange requests.
func (c InitiateReturnCommand) Exchange() *ExchangeDetails { return c.exchange }

func (c *InitiateReturnCommand) setUUID(dst *kernel.UUID, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	*dst = id
	return nil
}
